package betacode

import (
	"errors"
	"sync"
	"testing"
)

var testCodec = MustNew()

func TestConvertWords(t *testing.T) {
	tests := []struct {
		beta string
		want string
	}{
		{beta: "LO/GOS", want: "\u03bb\u1f79\u03b3\u03bf\u03c2"},
		{beta: "lo/gos", want: "\u03bb\u1f79\u03b3\u03bf\u03c2"},
		{beta: "LOGOS\n", want: "\u03bb\u03bf\u03b3\u03bf\u03c2"},
		{beta: "SOFIA", want: "\u03c3\u03bf\u03c6\u03b9\u03b1"},
		{beta: "h(me/ra", want: "\u1f21\u03bc\u1f73\u03c1\u03b1"},
		{beta: "a)lla/", want: "\u1f00\u03bb\u03bb\u1f71"},
		{beta: "*dio/nusos", want: "\u0394\u03b9\u1f79\u03bd\u03c5\u03c3\u03bf\u03c2"},
		{beta: "fqeirw=", want: "\u03c6\u03b8\u03b5\u03b9\u03c1\u1ff6"},
		{beta: "GLW=SSA", want: "\u03b3\u03bb\u1ff6\u03c3\u03c3\u03b1"},
		{beta: "a(/|", want: "\u1f85"},
		{beta: "*(=A|", want: "\u1f8f"},
		{beta: "*)R", want: "\u1fbf\u03a1"},
		{beta: "MH=NIN A)/EIDE QEA\\", want: "\u03bc\u1fc6\u03bd\u03b9\u03bd \u1f04\u03b5\u03b9\u03b4\u03b5 \u03b8\u03b5\u1f70"},
		{beta: "e)/pos, lo/gos.", want: "\u1f14\u03c0\u03bf\u03c2, \u03bb\u1f79\u03b3\u03bf\u03c2."},
		{beta: "a)ll'", want: "\u1f00\u03bb\u03bb\u2019"},
		{beta: "S3", want: "\u03f2"},
	}
	for _, tt := range tests {
		got, err := testCodec.Convert(tt.beta)
		if err != nil {
			t.Fatalf("convert %q: %v", tt.beta, err)
		}
		if got != tt.want {
			t.Fatalf("convert %q: got %q, want %q", tt.beta, got, tt.want)
		}
	}
}

func TestConvertMarkerOrderIsIrrelevant(t *testing.T) {
	tests := []struct {
		spellings []string
		want      string
	}{
		{[]string{"A/(", "A(/"}, "\u1f05"},
		{[]string{"*A/(", "*A(/", "*(/A", "(/*A"}, "\u1f0d"},
		{[]string{"W=)|", "W)=|"}, "\u1fa6"},
		{[]string{"I/+", "I+/"}, "\u1fd3"},
		{[]string{"U\\+", "U+\\"}, "\u1fe2"},
	}
	for _, tt := range tests {
		for _, beta := range tt.spellings {
			got, err := testCodec.Convert(beta)
			if err != nil {
				t.Fatalf("convert %q: %v", beta, err)
			}
			if got != tt.want {
				t.Fatalf("convert %q: got %q, want %q", beta, got, tt.want)
			}
		}
	}
}

func TestConvertCapitals(t *testing.T) {
	for _, beta := range []string{"*A", "*a"} {
		if got, _ := testCodec.Convert(beta); got != "\u0391" {
			t.Fatalf("convert %q: got %q, want capital alpha", beta, got)
		}
	}
	for _, beta := range []string{"*A)", "*)A", ")*A"} {
		if got, _ := testCodec.Convert(beta); got != "\u1f08" {
			t.Fatalf("convert %q: got %q, want capital alpha with psili", beta, got)
		}
	}
	// a trailing asterisk carries no meaning and is dropped
	if got, _ := testCodec.Convert("A*"); got != "\u03b1" {
		t.Fatalf("convert A*: got %q, want small alpha", got)
	}
}

func TestConvertTrailingAcuteIsElision(t *testing.T) {
	tests := []struct {
		beta string
		want string
	}{
		{beta: "A\\/", want: "\u1f70\u2019"},
		{beta: "A=/", want: "\u1fb6\u2019"},
	}
	for _, tt := range tests {
		got, err := testCodec.Convert(tt.beta)
		if err != nil {
			t.Fatalf("convert %q: %v", tt.beta, err)
		}
		if got != tt.want {
			t.Fatalf("convert %q: got %q, want %q", tt.beta, got, tt.want)
		}
	}
	if _, err := testCodec.Convert("A/\\"); err == nil {
		t.Fatalf("A/\\ must not convert")
	}
}

func TestConvertPassThrough(t *testing.T) {
	got, err := testCodec.Convert("A 1, B. 2; 3: 4! [5] #6 $7 \"8\" 9-0")
	if err != nil {
		t.Fatal(err)
	}
	want := "\u03b1 1, \u03b2. 2; 3: 4! [5] #6 $7 \"8\" 9-0"
	if got != want {
		t.Fatalf("pass-through mismatch: got %q, want %q", got, want)
	}
}

func TestConvertIllegiblePlaceholder(t *testing.T) {
	got, err := testCodec.Convert("LO/GOS?")
	if err != nil {
		t.Fatal(err)
	}
	if want := "\u03bb\u1f79\u03b3\u03bf\u03c3?"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestConvertFailures(t *testing.T) {
	for _, beta := range []string{
		"A/\\",      // two accents on one letter
		"A%",        // unknown character
		"LOGOS&",    // dangling macron
		"?LOGOS",    // placeholder in front of convertible text
		"LO/GOS\t(", // stray breathing
	} {
		got, err := testCodec.Convert(beta)
		if err == nil {
			t.Fatalf("convert %q: expected failure, got %q", beta, got)
		}
		if got != "" {
			t.Fatalf("convert %q: failure must not return partial result %q", beta, got)
		}
		if !errors.Is(err, ErrInvalidBetacode) {
			t.Fatalf("convert %q: expected ErrInvalidBetacode, got %v", beta, err)
		}
	}
}

func TestConversionErrorDetails(t *testing.T) {
	_, err := testCodec.Convert("a/\\b")
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConversionError, got %v", err)
	}
	if cerr.Converted != "\u1f71" {
		t.Fatalf("expected converted prefix ά, got %q", cerr.Converted)
	}
	if cerr.Remainder != "\\B\n" {
		t.Fatalf("unexpected remainder %q", cerr.Remainder)
	}
}

func TestConvertAll(t *testing.T) {
	results, failed, err := testCodec.ConvertAll([]string{"A", "B"})
	if err != nil || failed != -1 {
		t.Fatalf("unexpected failure at %d: %v", failed, err)
	}
	if len(results) != 2 || results[1] != "\u03b2" {
		t.Fatalf("unexpected results %q", results)
	}
	results, failed, err = testCodec.ConvertAll([]string{"A", "B%", "G"})
	if err == nil || failed != 1 {
		t.Fatalf("expected failure at index 1, got %d (%v)", failed, err)
	}
	if len(results) != 1 {
		t.Fatalf("expected results for the words before the failure, got %q", results)
	}
}

func TestConvertConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				u, err := testCodec.Convert("MH=NIN A)/EIDE QEA\\")
				if err != nil {
					errs <- err
					return
				}
				if u == "" {
					errs <- errors.New("empty conversion")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
