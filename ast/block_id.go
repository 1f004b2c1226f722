package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iankressin/eql-sub000/helper/hex"
)

// BlockTag is a symbolic block reference. TagNumber means a concrete height.
type BlockTag int

const (
	TagNumber BlockTag = iota
	TagLatest
	TagEarliest
	TagPending
	TagFinalized
	TagSafe
)

func (t BlockTag) String() string {
	switch t {
	case TagLatest:
		return "latest"
	case TagEarliest:
		return "earliest"
	case TagPending:
		return "pending"
	case TagFinalized:
		return "finalized"
	case TagSafe:
		return "safe"
	}

	return "number"
}

// BlockID identifies one block or an inclusive range of blocks
type BlockID interface {
	isBlockID()
	String() string
}

// BlockNumberOrTag is a single block given by height or tag
type BlockNumberOrTag struct {
	Tag    BlockTag
	Number uint64
}

func (BlockNumberOrTag) isBlockID() {}

// Number returns a concrete block reference
func Number(n uint64) BlockNumberOrTag {
	return BlockNumberOrTag{Tag: TagNumber, Number: n}
}

// Tag returns a symbolic block reference
func Tag(tag BlockTag) BlockNumberOrTag {
	return BlockNumberOrTag{Tag: tag}
}

// IsNumber reports whether the reference is already concrete
func (b BlockNumberOrTag) IsNumber() bool {
	return b.Tag == TagNumber
}

func (b BlockNumberOrTag) String() string {
	if b.IsNumber() {
		return strconv.FormatUint(b.Number, 10)
	}

	return b.Tag.String()
}

// RPCArg encodes the reference the way eth_getBlockByNumber expects it
func (b BlockNumberOrTag) RPCArg() string {
	if b.IsNumber() {
		return hex.EncodeUint64(b.Number)
	}

	return b.Tag.String()
}

// BlockRange is an inclusive range. A nil End denotes the single block Start.
type BlockRange struct {
	Start BlockNumberOrTag
	End   *BlockNumberOrTag
}

func (BlockRange) isBlockID() {}

func (r BlockRange) String() string {
	if r.End == nil {
		return r.Start.String() + ":"
	}

	return r.Start.String() + ":" + r.End.String()
}

// ParseBlockNumberOrTag accepts a decimal height, a 0x quantity or a tag name
func ParseBlockNumberOrTag(token string) (BlockNumberOrTag, error) {
	token = strings.TrimSpace(token)

	switch strings.ToLower(token) {
	case "latest":
		return Tag(TagLatest), nil
	case "earliest":
		return Tag(TagEarliest), nil
	case "pending":
		return Tag(TagPending), nil
	case "finalized":
		return Tag(TagFinalized), nil
	case "safe":
		return Tag(TagSafe), nil
	}

	if hex.Has0xPrefix(token) {
		n, err := hex.DecodeUint64(token)
		if err != nil {
			return BlockNumberOrTag{}, fmt.Errorf("invalid block number %q: %w", token, err)
		}

		return Number(n), nil
	}

	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return BlockNumberOrTag{}, fmt.Errorf("invalid block number %q", token)
	}

	return Number(n), nil
}
