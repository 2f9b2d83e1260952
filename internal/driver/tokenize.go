package driver

import (
	"fmt"
	"io"

	"fortio.org/safecast"

	"stylint/internal/diag"
	"stylint/internal/lexer"
	"stylint/internal/source"
	"stylint/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads one file and returns its full token stream; scan errors end
// up in Bag as "scan" violations.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenize(fs, fileID, maxDiagnostics), nil
}

// TokenizeReader tokenizes everything read from r as a virtual file called
// name. Bytes are kept as read: no BOM or CRLF normalisation.
func TokenizeReader(name string, r io.Reader, maxDiagnostics int) (*TokenizeResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("%s: input too large: %w", name, err)
	}
	fs := source.NewFileSet()
	return tokenize(fs, fs.AddVirtual(name, content), maxDiagnostics), nil
}

func tokenize(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: lexer.ReporterAdapter{Reporter: diag.BagReporter{Bag: bag}},
	})

	var tokens []token.Token
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
