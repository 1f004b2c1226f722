package dump

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/engine"
)

var ErrSerialization = errors.New("serialization failed")

// Serializer writes expression results to name.<format> files
type Serializer struct {
	logger hclog.Logger
	dir    string
}

type Option func(*Serializer)

// WithDir places every dump under dir instead of the working directory
func WithDir(dir string) Option {
	return func(s *Serializer) {
		s.dir = dir
	}
}

func New(logger hclog.Logger, opts ...Option) *Serializer {
	s := &Serializer{
		logger: logger.Named("dump"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Serialize writes result to the file named by d
func (s *Serializer) Serialize(result engine.ExpressionResult, d *ast.Dump) error {
	if d == nil {
		return fmt.Errorf("%w: no dump target", ErrSerialization)
	}

	path := filepath.Join(s.dir, d.Path())

	var err error

	switch d.Format {
	case ast.DumpJSON:
		err = writeJSON(path, result)
	case ast.DumpCSV:
		err = writeCSV(path, result)
	case ast.DumpParquet:
		err = writeParquet(path, result)
	default:
		err = fmt.Errorf("%w: %s", ast.ErrUnknownDumpFormat, d.Format)
	}

	if err != nil {
		if !errors.Is(err, ErrSerialization) {
			err = fmt.Errorf("%w: %s: %w", ErrSerialization, path, err)
		}

		return err
	}

	s.logger.Info("result dumped", "path", path, "format", d.Format.String(), "rows", result.Len())

	return nil
}
