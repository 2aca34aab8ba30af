/*
Package render provides the core of a 2D/3D renderer: GLSL shader programs
loaded from multi-stage source files, GPU vertex and index buffers, a scene
renderer and an orthographic camera controller.

# Overview

All GPU work goes through a Device, a narrow interface over the graphics
API. The backend/opengl package implements it with OpenGL 4.1 core; tests use
a recording fake. A Context wraps the Device, hands out resources and tracks
what is currently bound, so uniform uploads can check that their shader is
the program in use.

Every resource is created from a Context and is reference counted: the
creator holds one reference, anything that stores the resource (a vertex
array holding its buffers, a shader library holding its shaders) takes
another, and the GPU object is deleted when the last reference is released.

# Quick Start

	// Setup (on the thread owning the GL context)
	dev, _ := opengl.NewDevice()
	ctx := render.NewContext(dev)

	cfg, _ := render.LoadConfig("sandbox.toml")
	renderer := render.New(ctx, render.WithConfig(cfg))
	renderer.Init()

	shaders := ctx.NewShaderLibrary()
	flat, _ := shaders.Load("assets/flat_color.glsl")

	controller := render.NewOrthographicCameraController(16.0/9.0, true)
	state := render.NewRenderState()

	// Frame loop
	for !window.ShouldClose() {
	    ctx.RunPending()
	    controller.OnUpdate(dt, input)

	    renderer.Command().Clear()
	    renderer.BeginScene(state, controller)
	    renderer.Submit(state, flat, quad, mgl32.Ident4())
	    renderer.EndScene(state)

	    window.SwapBuffers()
	}

# Shader Source Format

A shader file holds every stage of one program. Each stage starts with a
marker line naming it:

	#type vertex
	#version 410 core
	...
	#type fragment
	#version 410 core
	...

Recognized names are vertex, fragment (or pixel), geometry, tessControl,
tessEvaluation and compute. Each stage may appear once.

Stages are compiled in pipeline order when the shader is created. Linking
happens on the first Bind, so attribute and fragment output locations can be
assigned with BindAttribLocation and BindFragDataLocation in between. A link
failure is permanent for that program; Reload compiles a fresh one.

# Uniforms

Uniform locations are looked up once per name and cached, misses included.
Setters require the shader to be bound:

	flat.Bind()
	flat.SetVec4("u_Color", mgl32.Vec4{0.8, 0.2, 0.3, 1})

Submit binds the shader and uploads u_ViewProjectionMatrix and u_Transform
before drawing.

# Scenes

A RenderState carries the view-projection matrix captured by BeginScene.
Independent passes (world and HUD, for example) use independent states:

	renderer.BeginScene(world, controller)
	renderer.BeginScene(hud, hudCamera)

Submit outside BeginScene/EndScene returns ErrSceneNotActive.

# Camera Controls

OrthographicCameraController responds to:

	W / S            Pan up / down
	A / D            Pan left / right
	Q / E            Rotate counter-clockwise / clockwise (rotation enabled only)
	Mouse Wheel      Zoom (minimum zoom level 0.25)
	Window resize    Keep the aspect ratio of the framebuffer

Pan speed equals the zoom level, so the camera moves faster when zoomed out.

# Hot Reload

ShaderLibrary.Watch watches the directories of file-backed shaders. File
events arrive on a background goroutine and are posted to the Context; the
reload itself runs on the render thread at the next RunPending. A reload that
fails to compile keeps the previous program.

# Threading

A Context and everything created from it belong to the thread owning the
graphics context. Only Context.Post and Context.Pending are safe to call from
other goroutines.
*/
package render
