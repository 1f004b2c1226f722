package engine

import "errors"

var (
	ErrEnsResolution                  = errors.New("ens resolution failed")
	ErrBlockTagNotFound               = errors.New("block tag not found")
	ErrStartBlockGreaterThanEndBlock  = errors.New("start block must not be greater than end block")
	ErrBlockRangeTooLarge             = errors.New("block range too large")
	ErrMissingTransactionHashOrFilter = errors.New("transaction query needs hashes or a block filter")
	ErrBlockNotFound                  = errors.New("block not found")
	ErrUnsupportedField               = errors.New("unsupported field")
	ErrUnsupportedExpression          = errors.New("unsupported expression")
)
