// Package retouch implements an interactive photo retouch core: a live,
// GPU-backed image surface that consumes a stream of localized brush strokes
// (blemish removal, smoothing, skin-tone shift, wrinkle reduction, teeth
// whitening) and supports bounded undo/redo over full-frame snapshots.
//
// The package is split along thread boundaries. A Session owns the image
// surface, the GPU texture mirroring it, and the snapshot history; all
// mutations execute on a single render goroutine in submission order. An
// Editor translates pointer events from the UI thread into stroke segments
// through a Viewport that accounts for live pan/zoom.
//
// Basic usage:
//
//	src := retouch.FromImage(photo)
//	session := retouch.NewSession()
//	defer session.Close()
//	session.Initialize(src)
//
//	vp := retouch.NewViewport(800, 600)
//	ed := retouch.NewEditor(session, vp)
//	ed.SetTool(retouch.ToolSmooth)
//	ed.PointerDown(retouch.Pt(400, 300))
//	ed.PointerMove(retouch.Pt(420, 310))
//	ed.PointerUp()
//
//	result, err := ed.Confirm()
//
// GPU acceleration is optional. Import the gpu subpackage to register the
// wgpu-backed surface backend:
//
//	import _ "github.com/gogpu/retouch/gpu"
//
// Without a registered backend the surface lives entirely in CPU memory and
// all tool passes run in software, which is also the path exercised by tests.
package retouch
