package codegen

import "strconv"

const topFrameAlias = "page"

// FrameAlias names the handle a frame is addressed by in the script
func FrameAlias(frameID int) string {
	if frameID == 0 {
		return topFrameAlias
	}
	return "frame_" + strconv.Itoa(frameID)
}

// FrameRegistry remembers the origin of every embedded frame seen during a
// run until its declaration has been emitted
type FrameRegistry struct {
	urls map[int]string
}

func NewFrameRegistry() *FrameRegistry {
	return &FrameRegistry{urls: make(map[int]string)}
}

// Register records the frame's URL. The latest URL wins.
func (r *FrameRegistry) Register(frameID int, url string) {
	r.urls[frameID] = url
}

// Take returns the frame's URL and forgets the frame, so each frame is
// handed out at most once
func (r *FrameRegistry) Take(frameID int) (string, bool) {
	url, ok := r.urls[frameID]
	if ok {
		delete(r.urls, frameID)
	}
	return url, ok
}

func (r *FrameRegistry) Len() int {
	return len(r.urls)
}
