package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("Rex\n"), "Nome", &out)
	if err != nil || got != "Rex" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Nome") {
		t.Fatalf("prompt missing: %q", out.String())
	}
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Nome", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer
	n, err := GetInt(rdr("7\n"), "Idade", 3, &out)
	if err != nil || n != 7 {
		t.Fatalf("got %d, err=%v", n, err)
	}
}

func TestGetIntEmptyUsesFallback(t *testing.T) {
	var out bytes.Buffer
	n, err := GetInt(rdr("\n"), "Idade", 3, &out)
	if err != nil || n != 3 {
		t.Fatalf("got %d, err=%v", n, err)
	}
}

func TestGetIntRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	if _, err := GetInt(rdr("abc\n"), "Idade", 3, &out); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil || pw != "s3cret" {
		t.Fatalf("got %q, err=%v", pw, err)
	}
}

func TestGetPasswordError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	var out bytes.Buffer
	if _, err := GetPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"42"})
	if err != nil || id != 42 {
		t.Fatalf("got %d, err=%v", id, err)
	}

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-1"}} {
		if _, err := parseID(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
