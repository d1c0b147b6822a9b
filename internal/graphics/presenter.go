package graphics

import (
	"fmt"

	"earf/internal/config"
	"earf/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// The frame texture is stored one screen column per texture row, so the
// quad maps screen x to texture t and screen y to texture s.
const blitVertexSrc = `#version 410 core
layout(location = 0) in vec2 position;
out vec2 texCoord;
void main() {
	texCoord = vec2((1.0 - position.y) * 0.5, (position.x + 1.0) * 0.5);
	gl_Position = vec4(position, 0.0, 1.0);
}`

const blitFragmentSrc = `#version 410 core
in vec2 texCoord;
out vec4 fragColor;
uniform sampler2D frame;
void main() {
	fragColor = texture(frame, texCoord);
}`

// full screen triangle strip
var quadVertices = []float32{
	-1, 1,
	-1, -1,
	1, 1,
	1, -1,
}

// Presenter streams rendered frames into a texture and blits them over the
// fog colour.
type Presenter struct {
	window       *glfw.Window
	shader       *Shader
	vao, vbo     uint32
	texture      uint32
	screenWidth  int
	screenHeight int
	fog          mgl32.Vec4
}

// OpenWindow creates the window and GL context for the configured screen.
// glfw.Init must already have been called on the main thread.
func OpenWindow(s config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(s.ScreenWidth*s.ScreenScale, s.ScreenHeight*s.ScreenScale, "earf", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return window, nil
}

// NewPresenter sets up the texture and quad for a screenWidth x screenHeight frame.
func NewPresenter(window *glfw.Window, screenWidth, screenHeight int, fog config.Color) (*Presenter, error) {
	shader, err := NewShader(blitVertexSrc, blitFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("blit shader: %w", err)
	}

	p := &Presenter{
		window:       window,
		shader:       shader,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fog:          mgl32.Vec4{float32(fog.R) / 255, float32(fog.G) / 255, float32(fog.B) / 255, 1},
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	// texture is screenHeight wide and screenWidth tall
	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(screenHeight), int32(screenWidth), 0, gl.BGRA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	shader.Use()
	shader.SetInt("frame", 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return p, nil
}

func (p *Presenter) ShouldClose() bool { return p.window.ShouldClose() }

func (p *Presenter) PollEvents() { glfw.PollEvents() }

// Present uploads frame, draws it over the fog colour and swaps buffers.
func (p *Presenter) Present(frame []byte) error {
	if want := render.FrameSize(p.screenWidth, p.screenHeight); len(frame) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", render.ErrFrameSize, len(frame), want)
	}

	fbw, fbh := p.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(p.fog.X(), p.fog.Y(), p.fog.Z(), p.fog.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(p.screenHeight), int32(p.screenWidth), gl.BGRA, gl.UNSIGNED_BYTE, gl.Ptr(frame))

	p.shader.Use()
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	p.window.SwapBuffers()
	return nil
}

// Dispose frees GL objects. The window is left to the caller.
func (p *Presenter) Dispose() {
	gl.DeleteTextures(1, &p.texture)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	p.shader.Delete()
}
