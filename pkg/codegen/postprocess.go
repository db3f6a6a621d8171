package codegen

import "fmt"

// Finish runs the post-processing passes and returns the final blocks.
// Frame declarations are placed first so they attach to recorded blocks and
// never to the separators added afterwards.
func (r *Run) Finish() []Block {
	if r.done {
		return r.finished
	}
	r.scopeFrames()
	blocks := r.blocks.Blocks()
	if r.opts.BlankLinesBetweenBlocks && len(blocks) > 0 {
		blocks = separateBlocks(blocks)
	}
	r.finished = blocks
	r.done = true
	return blocks
}

// scopeFrames prepends the frame lookup to the first block of every embedded
// frame still waiting for its declaration
func (r *Run) scopeFrames() {
	for i, block := range r.blocks.blocks {
		if block.FrameID == 0 {
			continue
		}
		url, ok := r.frames.Take(block.FrameID)
		if !ok {
			continue
		}
		r.blocks.blocks[i] = block.withPrefix(frameDeclaration(block.FrameID, url)...)
	}
}

func frameDeclaration(frameID int, url string) []Line {
	return []Line{
		{Kind: KindFrameDeclaration, Text: "let frames = await page.frames()"},
		{Kind: KindFrameDeclaration, Text: fmt.Sprintf("const %s = frames.find(f => f.url() === '%s')", FrameAlias(frameID), url)},
	}
}

// separateBlocks surrounds every block with blank separators: one before the
// first, one between each pair and one after the last
func separateBlocks(blocks []Block) []Block {
	separated := make([]Block, 0, 2*len(blocks)+1)
	separated = append(separated, newBlock(0, spacerLine()))
	for _, block := range blocks {
		separated = append(separated, block, newBlock(0, spacerLine()))
	}
	return separated
}
