package engine

// MeshID names a mesh known to the renderer.
type MeshID uint32

// Transform is a 3D placement. 2D callers leave Z at 0.
type Transform struct {
	X, Y, Z float32
}

type RenderCommand struct {
	Mesh      MeshID
	Transform Transform
}

// RenderQueue is the resource render systems push into during a frame. Tick
// drains it into the FrameOutput.
type RenderQueue struct {
	Commands []RenderCommand
}

func (q *RenderQueue) Push(cmd RenderCommand) {
	q.Commands = append(q.Commands, cmd)
}

func (q *RenderQueue) drain() []RenderCommand {
	cmds := q.Commands
	q.Commands = nil
	return cmds
}

// FrameOutput is what one Tick hands back to the host renderer.
type FrameOutput struct {
	Commands []RenderCommand
}
