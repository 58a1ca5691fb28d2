package shader

import (
	"regexp"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSource = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// GenerateVertexShader returns the fullscreen quad vertex shader shared by the
// mist and blit programs.
func GenerateVertexShader() string {
	return vertexShaderSource
}

func GetBlitFragmentShader() string {
	return blitFragmentShaderSource
}

// GetMistFragmentShader returns the WebGL2 source of the mist pass. It must go
// through the translator before a desktop context can compile it.
func GetMistFragmentShader() string {
	return mistFragmentSource
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)

// DeclaredUniforms maps each uniform declared in src to its GLSL type.
func DeclaredUniforms(src string) map[string]string {
	out := make(map[string]string)
	for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
		out[m[2]] = m[1]
	}
	return out
}
