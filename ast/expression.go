package ast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iankressin/eql-sub000/chain"
)

var (
	ErrMismatchEntityAndEntityID = errors.New("entity id does not match entity")
	ErrUnknownDumpFormat         = errors.New("unknown dump format")
)

// Expression is a single parsed statement
type Expression interface {
	isExpression()
	Source() string
}

// Get is the only statement kind: GET <fields> FROM <entity> ON <chain> [>> dump]
type Get struct {
	Entity Entity
	// Fields is the field list as written, wildcard expanded. It may name
	// fields of another entity until semantic analysis rejects them.
	Fields []Field
	Chain  ChainTarget
	// Query echoes the statement text
	Query string
	Dump  *Dump
}

func (*Get) isExpression() {}

func (g *Get) Source() string { return g.Query }

// ChainTarget is a known chain or a raw endpoint. RPC wins when set.
type ChainTarget struct {
	Chain chain.Chain
	RPC   string
}

// ParseChainTarget accepts a chain name, an alias or an http(s)/ws(s) URL
func ParseChainTarget(token string) (ChainTarget, error) {
	if chain.IsRPCURL(token) {
		return ChainTarget{RPC: token}, nil
	}

	c, err := chain.Parse(token)
	if err != nil {
		return ChainTarget{}, err
	}

	return ChainTarget{Chain: c}, nil
}

func (t ChainTarget) String() string {
	if t.RPC != "" {
		return t.RPC
	}

	return t.Chain.String()
}

type DumpFormat int

const (
	DumpJSON DumpFormat = iota
	DumpCSV
	DumpParquet
)

func (f DumpFormat) String() string {
	switch f {
	case DumpJSON:
		return "json"
	case DumpCSV:
		return "csv"
	case DumpParquet:
		return "parquet"
	}

	return fmt.Sprintf("DumpFormat(%d)", int(f))
}

func ParseDumpFormat(ext string) (DumpFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return DumpJSON, nil
	case "csv":
		return DumpCSV, nil
	case "parquet":
		return DumpParquet, nil
	}

	return DumpJSON, fmt.Errorf("%w: %q", ErrUnknownDumpFormat, ext)
}

// Dump persists a result to Name.Format
type Dump struct {
	Name   string
	Format DumpFormat
}

// ParseDump splits "name.format"
func ParseDump(file string) (*Dump, error) {
	idx := strings.LastIndex(file, ".")
	if idx <= 0 || idx == len(file)-1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDumpFormat, file)
	}

	format, err := ParseDumpFormat(file[idx+1:])
	if err != nil {
		return nil, err
	}

	return &Dump{Name: file[:idx], Format: format}, nil
}

// Path is the file the dump is written to
func (d *Dump) Path() string {
	return d.Name + "." + d.Format.String()
}
