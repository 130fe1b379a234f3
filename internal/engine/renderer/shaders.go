package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec4 aPos;
layout (location = 1) in vec4 aColor;
layout (location = 2) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec4 vColor;
out vec3 vWorld;
out vec3 vNormal;

void main() {
	vec4 world = uModel * vec4(aPos.xyz, 1.0);
	vWorld = world.xyz;
	vColor = aColor;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * world;
}
`

// Generators disagree on winding and most store a +Z normal, so unless the
// mesh carries computed normals the face normal comes from screen-space
// derivatives. Lighting is two-sided either way.
const meshFragmentShader = `
#version 410 core

in vec4 vColor;
in vec3 vWorld;
in vec3 vNormal;

uniform vec3 uLightDir;
uniform float uAmbient;
uniform bool uUnlit;
uniform bool uVertexNormals;
uniform vec4 uLineColor;

out vec4 FragColor;

void main() {
	if (uUnlit) {
		FragColor = uLineColor;
		return;
	}
	vec3 n = uVertexNormals && dot(vNormal, vNormal) > 0.0
		? normalize(vNormal)
		: normalize(cross(dFdx(vWorld), dFdy(vWorld)));
	float diffuse = abs(dot(n, normalize(uLightDir)));
	float shade = uAmbient + (1.0 - uAmbient) * diffuse;
	FragColor = vec4(vColor.rgb * shade, vColor.a);
}
`

var meshUniforms = []string{"uViewProj", "uModel", "uLightDir", "uAmbient", "uUnlit", "uVertexNormals", "uLineColor"}
