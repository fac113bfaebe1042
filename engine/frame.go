package engine

import "fmt"

// Wrap turns the children of a finished frame into a single token.
type Wrap func(children ...Token) Token

// Make turns one token into another, typically a Node.
type Make func(Token) Token

// LeafWrap returns a Wrap that joins the children into Leaf(kind, text).
func LeafWrap(kind string) Wrap {
	return func(children ...Token) Token {
		return Leaf(kind, JoinText(children))
	}
}

// CompoundWrap returns a Wrap that tags the children as Compound(kind, ...).
func CompoundWrap(kind string) Wrap {
	return func(children ...Token) Token {
		return Compound(kind, children...)
	}
}

// Concat joins the children into one Text token.
func Concat(children ...Token) Token {
	return Text(JoinText(children))
}

// Depth returns the number of frames open on top of the root frame.
func (p *Parser) Depth() int {
	return len(p.frames) - 1
}

// PushFrame flushes the buffer and opens a new active frame.
func (p *Parser) PushFrame() {
	p.Flush()

	if p.maxDepth > 0 && p.Depth() >= p.maxDepth {
		p.raise(fmt.Sprintf("at most %d nested frames", p.maxDepth))
	}

	p.frames = append(p.frames, nil)
	p.logger.V(2).Info("push frame", "depth", p.Depth(), "offset", p.pos)
}

// PopFrame flushes the buffer, closes the active frame and appends its tokens to
// the enclosing frame as one Group.
func (p *Parser) PopFrame() {
	p.Flush()

	if len(p.frames) == 1 {
		panic(ErrFrameUnderflow)
	}

	top := len(p.frames) - 1
	children := p.frames[top]
	p.frames = p.frames[:top]
	p.logger.V(2).Info("pop frame", "depth", p.Depth(), "offset", p.pos, "tokens", len(children))

	p.PushToken(Group(children...))
}

// WithFrame runs body inside a new frame. When wrap is not nil the resulting
// group is replaced with wrap(children...).
func (p *Parser) WithFrame(body func(), wrap Wrap) {
	p.PushFrame()
	body()
	p.PopFrame()

	if wrap == nil {
		return
	}

	group, _ := p.PopToken().(Node)
	p.PushToken(wrap(group.Children...))
}

// PushToken flushes the buffer and appends t to the active frame.
func (p *Parser) PushToken(t Token) {
	p.Flush()

	top := len(p.frames) - 1
	p.frames[top] = append(p.frames[top], t)
}

// PopToken flushes the buffer and removes the last token of the active frame.
// It aborts with a SyntaxError when the active frame is empty.
func (p *Parser) PopToken() Token {
	p.Flush()

	top := len(p.frames) - 1
	frame := p.frames[top]

	if len(frame) == 0 {
		p.Expect("a token", "empty frame")
	}

	last := frame[len(frame)-1]
	p.frames[top] = frame[:len(frame)-1]

	return last
}

// WrapToken replaces the last token of the active frame with fn(token).
func (p *Parser) WrapToken(fn Make) {
	p.PushToken(fn(p.PopToken()))
}
