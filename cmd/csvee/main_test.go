package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, fs afero.Fs, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, fs, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Convert(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "passthrough",
			stdin: "a,\"b,c\"\n1,2\n",
			want:  "a,\"b,c\"\n1,2\n",
		},
		{
			name:  "to tsv",
			stdin: "a,\"b,c\"\n1,2\n",
			args:  []string{"--to", "tsv"},
			want:  "a\tb,c\n1\t2\n",
		},
		{
			name:  "excel to unix",
			stdin: "a,b\r\n",
			args:  []string{"--from", "excel", "--to", "unix"},
			want:  "\"a\",\"b\"\n",
		},
		{
			name:  "quoting and terminator overrides",
			stdin: "x,1\n",
			args:  []string{"--quoting", "nonnumeric", "--terminator", "crlf", "--infer-types"},
			want:  "\"x\",1\r\n",
		},
		{
			name:  "quote characters taken literally",
			stdin: "a;\"b;c\"\n'x;y';z\n",
			args:  []string{"-d", ";", "--quote", "\"", "--to", "default"},
			want:  "a,b;c\n'x,y',z\n",
		},
		{
			name:  "single quote",
			stdin: "a;'b;c'\n",
			args:  []string{"-d", ";", "--quote", "'", "--to", "default"},
			want:  "a,b;c\n",
		},
		{
			name:  "custom input delimiter",
			stdin: "a;b\n",
			args:  []string{"-d", "semicolon"},
			want:  "a;b\n",
		},
		{
			name:  "sniff",
			stdin: "a|b|c\n1|2|3\n",
			args:  []string{"--sniff", "--to", "default"},
			want:  "a,b,c\n1,2,3\n",
		},
		{
			name:  "comment and skip space",
			stdin: "# note\na,  b\n",
			args:  []string{"--comment", "#", "--skip-space"},
			want:  "a,b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, afero.NewMemMapFs(), tt.stdin, tt.args...)
			require.Equal(t, exitOK, code, "stderr: %s", stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRun_Files(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in.tsv", []byte("name\tage\nAnn\t31\n"), 0o644))

	code, stdout, stderr := runCLI(t, fs, "", "in.tsv", "--to", "excel", "-o", "out.csv")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	got, err := afero.ReadFile(fs, "out.csv")
	require.NoError(t, err)
	assert.Equal(t, "name,age\r\nAnn,31\r\n", string(got))
}

func TestRun_Pretty(t *testing.T) {
	code, stdout, stderr := runCLI(t, afero.NewMemMapFs(), "name,age\nAnn,31\nBob\n", "--pretty")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	assert.Contains(t, stdout, "name")
	assert.Contains(t, stdout, "Ann")
	assert.Contains(t, stdout, "Bob")
	assert.Contains(t, stdout, "+")
}

func TestRun_ConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cnfFileName, []byte("[csvee]\nto = tsv\n"), 0o644))

	code, stdout, stderr := runCLI(t, fs, "a,b\n")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Equal(t, "a\tb\n", stdout)

	// flags take precedence over the config file
	code, stdout, _ = runCLI(t, fs, "a,b\n", "--to", "unix")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "\"a\",\"b\"\n", stdout)
}

// unreadableFs fails every Open with a permission error.
type unreadableFs struct {
	afero.Fs
}

func (unreadableFs) Open(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

func TestRun_ConfigFileErrors(t *testing.T) {
	code, _, stderr := runCLI(t, unreadableFs{afero.NewMemMapFs()}, "a\n")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, cnfFileName)
	assert.Contains(t, stderr, "permission denied")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cnfFileName, []byte("[csvee]\nquoting = sometimes\n"), 0o644))
	code, _, stderr = runCLI(t, fs, "a\n")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, cnfFileName)
	assert.Contains(t, stderr, "sometimes")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown flag",
			args:     []string{"--bogus"},
			wantCode: exitUsage,
			wantErr:  "bogus",
		},
		{
			name:     "invalid choice",
			args:     []string{"--quoting", "sometimes"},
			wantCode: exitUsage,
			wantErr:  "sometimes",
		},
		{
			name:     "delimiter equals quote",
			stdin:    "a\n",
			args:     []string{"-d", "\""},
			wantCode: exitUsage,
			wantErr:  "quote character same as delimiter",
		},
		{
			name:     "multi-character delimiter",
			stdin:    "a\n",
			args:     []string{"-d", "::"},
			wantCode: exitUsage,
			wantErr:  "single character",
		},
		{
			name:     "missing file",
			args:     []string{"missing.csv"},
			wantCode: exitError,
			wantErr:  "missing.csv",
		},
		{
			name:     "unterminated quote",
			stdin:    "a,\"b\n",
			wantCode: exitError,
			wantErr:  "unterminated quoted field",
		},
		{
			name:     "malformed row",
			stdin:    "a,b\nc\n",
			args:     []string{"--strict"},
			wantCode: exitError,
			wantErr:  "wrong number of fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, afero.NewMemMapFs(), tt.stdin, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRun_LenientWarnings(t *testing.T) {
	code, stdout, stderr := runCLI(t, afero.NewMemMapFs(), "a,b\nc\nd,\"e", "--lenient", "--strict", "--on-bad-line", "warn")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	assert.Equal(t, "a,b\nd,e\n", stdout)
	assert.Contains(t, stderr, "MalformedRow")
	assert.Contains(t, stderr, "UnterminatedQuote")
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI(t, afero.NewMemMapFs(), "", "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "--delimiter")
}

func TestParseChar(t *testing.T) {
	tests := []struct {
		input   string
		want    byte
		wantErr bool
	}{
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"pipe", '|', false},
		{";", ';', false},
		{"", 0, true},
		{"ab", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseChar("delimiter", tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
