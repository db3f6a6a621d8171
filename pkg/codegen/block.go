package codegen

import (
	"strings"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// KindFrameDeclaration marks the lines that bind a frame before its first use.
// It never appears on a recorded event.
const KindFrameDeclaration browser.Action = "frame-declaration"

// Line is a single output statement. A Line without a kind is a blank spacer.
type Line struct {
	Kind browser.Action
	Text string
}

// IsSpacer reports whether the line is a blank separator
func (l Line) IsSpacer() bool {
	return l.Kind == ""
}

func spacerLine() Line {
	return Line{}
}

// Block is the unit of emission and replacement: a non-empty run of lines
// produced under a single frame
type Block struct {
	FrameID int
	Lines   []Line
}

func newBlock(frameID int, lines ...Line) Block {
	return Block{FrameID: frameID, Lines: lines}
}

// withPrefix returns a copy of the block with lines placed before its own
func (b Block) withPrefix(lines ...Line) Block {
	merged := make([]Line, 0, len(lines)+len(b.Lines))
	merged = append(merged, lines...)
	merged = append(merged, b.Lines...)
	return Block{FrameID: b.FrameID, Lines: merged}
}

// BlockStore is the ordered list of blocks a run builds. Blocks are only
// appended, except that the last one may be collapsed into its successor.
type BlockStore struct {
	blocks []Block
}

// Append adds a block to the end of the store
func (s *BlockStore) Append(b Block) {
	s.blocks = append(s.blocks, b)
}

// AppendOrCollapse replaces the last block when its first line has the same
// kind as b's and mentions key, and appends otherwise. It reports whether a
// replacement happened.
func (s *BlockStore) AppendOrCollapse(key string, b Block) bool {
	if n := len(s.blocks); n > 0 && len(b.Lines) > 0 && len(s.blocks[n-1].Lines) > 0 {
		first := s.blocks[n-1].Lines[0]
		if first.Kind == b.Lines[0].Kind && strings.Contains(first.Text, key) {
			s.blocks[n-1] = b
			return true
		}
	}
	s.blocks = append(s.blocks, b)
	return false
}

func (s *BlockStore) Len() int {
	return len(s.blocks)
}

// Blocks returns a copy of the stored blocks
func (s *BlockStore) Blocks() []Block {
	blocks := make([]Block, len(s.blocks))
	copy(blocks, s.blocks)
	return blocks
}
