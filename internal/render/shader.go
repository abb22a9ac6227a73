package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"monster-globe/internal/globe"
)

// maxLights is the number of directional lights the lit shader takes. Unused slots have zero intensity.
const maxLights = 4

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS: albedo texture * colDiffuse, ambient plus up to four directional lights, bump from
	// the height map in texture2 via screen-space derivatives.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform sampler2D texture2;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 lightDirs[4];
uniform vec3 lightColors[4];
uniform float bumpScale;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;

vec3 perturbNormal(vec3 N, float height) {
  vec3 dpdx = dFdx(fragPosition);
  vec3 dpdy = dFdy(fragPosition);
  float dhdx = dFdx(height);
  float dhdy = dFdy(height);
  vec3 r1 = cross(dpdy, N);
  vec3 r2 = cross(N, dpdx);
  float det = dot(dpdx, r1);
  vec3 grad = sign(det) * (dhdx * r1 + dhdy * r2);
  return normalize(abs(det) * N - grad);
}

void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  if (bumpScale > 0.0) {
    N = perturbNormal(N, texture(texture2, fragTexCoord).r * bumpScale);
  }
  vec3 V = normalize(viewPos - fragPosition);
  vec3 color = ambient * tint.rgb;
  for (int i = 0; i < 4; i++) {
    vec3 L = normalize(lightDirs[i]);
    float NdotL = max(dot(N, L), 0.0);
    color += tint.rgb * NdotL * lightColors[i];
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    color += lightColors[i] * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  }
  finalColor = vec4(color, tint.a);
}
`
	// glowFS: rim glow for the atmosphere shell, strongest at the silhouette.
	glowFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float rim = 1.0 - abs(dot(N, V));
  float intensity = pow(rim, 3.0);
  finalColor = vec4(colDiffuse.rgb * intensity, colDiffuse.a * intensity);
}
`
)

const (
	defaultBumpScale        = float32(0.6)
	defaultSpecularPower    = float32(32.0)
	defaultSpecularStrength = float32(0.08)
)

type shaders struct {
	lit  rl.Shader
	glow rl.Shader
}

func loadShaders() shaders {
	return shaders{
		lit:  rl.LoadShaderFromMemory(litVS, litFS),
		glow: rl.LoadShaderFromMemory(litVS, glowFS),
	}
}

func (s shaders) unload() {
	if rl.IsShaderValid(s.lit) {
		rl.UnloadShader(s.lit)
	}
	if rl.IsShaderValid(s.glow) {
		rl.UnloadShader(s.glow)
	}
}

// lightUniforms is the per-frame light rig in shader form.
type lightUniforms struct {
	ambient [3]float32
	dirs    [maxLights * 3]float32
	colors  [maxLights * 3]float32
}

// newLightUniforms folds the scene lights into one ambient term and up to maxLights directional
// lights. A directional light shines from its position towards the origin.
func newLightUniforms(lights []globe.Light) lightUniforms {
	var u lightUniforms
	n := 0
	for _, l := range lights {
		r := float32(l.Color.R) / 255 * l.Intensity
		g := float32(l.Color.G) / 255 * l.Intensity
		b := float32(l.Color.B) / 255 * l.Intensity
		switch l.Kind {
		case globe.LightAmbient:
			u.ambient[0] += r
			u.ambient[1] += g
			u.ambient[2] += b
		case globe.LightDirectional:
			if n == maxLights || l.Position.Len() == 0 {
				continue
			}
			d := l.Position.Normalize()
			copy(u.dirs[n*3:], d[:])
			u.colors[n*3], u.colors[n*3+1], u.colors[n*3+2] = r, g, b
			n++
		}
	}
	for ; n < maxLights; n++ {
		u.dirs[n*3+1] = 1
	}
	return u
}

// setLitShaderUniforms sets view position, lights, bump and specular on the lit shader (cgo-safe: local arrays).
func setLitShaderUniforms(shader rl.Shader, viewPos [3]float32, lights lightUniforms, bump bool) {
	if !rl.IsShaderValid(shader) {
		return
	}
	vp := viewPos
	amb := lights.ambient
	dirs := lights.dirs
	colors := lights.colors
	bumpScale := float32(0)
	if bump {
		bumpScale = defaultBumpScale
	}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, vp[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDirs"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, dirs[:], rl.ShaderUniformVec3, maxLights)
	}
	if loc := rl.GetShaderLocation(shader, "lightColors"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, colors[:], rl.ShaderUniformVec3, maxLights)
	}
	if loc := rl.GetShaderLocation(shader, "bumpScale"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{bumpScale}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

func setGlowShaderUniforms(shader rl.Shader, viewPos [3]float32) {
	if !rl.IsShaderValid(shader) {
		return
	}
	vp := viewPos
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, vp[:], rl.ShaderUniformVec3, 1)
	}
}
