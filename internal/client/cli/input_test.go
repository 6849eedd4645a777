package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetPairs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "a=1\nb=2\n\n",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "a=1\r\nb=2\r\n\r\n",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:  "Immediate blank line gives nil",
			input: "\n",
		},
		{
			name:     "EOF without trailing blank line",
			input:    "a=1\nb=2",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "Spaces around name and value are trimmed",
			input:    " github = https://github.com/x \n\n",
			expected: map[string]string{"github": "https://github.com/x"},
		},
		{
			name:     "Value may contain '='",
			input:    "site=https://x.dev/?a=b\n\n",
			expected: map[string]string{"site": "https://x.dev/?a=b"},
		},
		{name: "Missing '='", input: "github\n\n", wantErr: true},
		{name: "Empty name", input: "=value\n\n", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetPairs(rdr(tc.input), "Socials", &out)
			if tc.wantErr {
				require.ErrorIs(t, err, errPairFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestAskField(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "enter keeps", input: "\n", current: "Acme", want: "Acme"},
		{name: "dash clears", input: "-\n", current: "Acme", want: ""},
		{name: "new value", input: "Initech\n", current: "Acme", want: "Initech"},
		{name: "empty stays empty", input: "\n", current: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := askField(rdr(tc.input), &out, "Company", tc.current)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			if tc.current != "" {
				require.Contains(t, out.String(), "[Acme]")
			}
		})
	}
}
