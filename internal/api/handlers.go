package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/npillmayer/betacode"
	"github.com/npillmayer/betacode/markup"
	"github.com/npillmayer/betacode/variants"
)

type conversion struct {
	Betacode  string `json:"betacode"`
	Unicode   string `json:"unicode,omitempty"`
	OK        bool   `json:"ok"`
	Remainder string `json:"remainder,omitempty"`
}

func (s *Server) convert(word string) conversion {
	c := conversion{Betacode: word}
	u, err := s.codec.Convert(word)
	if err != nil {
		var cerr *betacode.ConversionError
		if errors.As(err, &cerr) {
			c.Remainder = strings.TrimSuffix(cerr.Remainder, "\n")
		}
		return c
	}
	c.Unicode, c.OK = u, true
	return c
}

func (s *Server) handleConvertQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		jsonError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}
	c := s.convert(q)
	status := http.StatusOK
	if !c.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, c)
}

type batchRequest struct {
	Words  []string `json:"words"`
	Strict bool     `json:"strict"` // all words or none
}

func (s *Server) handleConvertBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Words) > s.cfg.MaxWords {
		jsonError(w, "too many words", http.StatusRequestEntityTooLarge)
		return
	}
	if req.Strict {
		s.convertStrict(w, req.Words)
		return
	}
	results := make([]conversion, len(req.Words))
	failed := 0
	for i, word := range req.Words {
		results[i] = s.convert(word)
		if !results[i].OK {
			failed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"failed":  failed,
	})
}

func (s *Server) convertStrict(w http.ResponseWriter, words []string) {
	converted, index, err := s.codec.ConvertAll(words)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": err.Error(),
			"index": index,
		})
		return
	}
	results := make([]conversion, len(words))
	for i, word := range words {
		results[i] = conversion{Betacode: word, Unicode: converted[i], OK: true}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"failed":  0,
	})
}

func (s *Server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	var out strings.Builder
	stats, err := markup.ConvertHTML(s.codec, r.Body, &out)
	if err != nil {
		s.log.Warn("markup conversion failed", "error", err)
		jsonError(w, "cannot process markup", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Betacode-Converted", strconv.Itoa(stats.Converted))
	w.Header().Set("X-Betacode-Failed", strconv.Itoa(stats.Failed))
	w.Write([]byte(out.String()))
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		jsonError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("input") == "betacode" {
		u, err := s.codec.Convert(q)
		if err != nil {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		q = u
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"word":     q,
		"variants": variants.Of(q),
	})
}

type symbol struct {
	Token   string `json:"token"`
	Unicode string `json:"unicode"`
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	table := s.codec.Table()
	tokens := table.TokensWithPrefix(strings.ToUpper(r.URL.Query().Get("prefix")))
	symbols := make([]symbol, 0, len(tokens))
	for _, t := range tokens {
		u, _ := table.Lookup(t)
		symbols = append(symbols, symbol{Token: t, Unicode: u})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(symbols),
		"symbols": symbols,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
