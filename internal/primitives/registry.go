package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for a primitive type. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps primitive type names to mesh+material. Meshes are created on
// first use so that GPU resources are allocated after the window/OpenGL
// context exists.
type Registry struct {
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives cached.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 0.5, 1}, // default: from above
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once
// per frame before drawing objects so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// defaultSphereRings and defaultSphereSlices control sphere mesh resolution.
const defaultSphereRings = 16
const defaultSphereSlices = 16

// defaultCylinderSlices controls cylinder mesh resolution.
const defaultCylinderSlices = 16

// ensure creates the mesh and material for key if not yet cached. All meshes
// are unit-sized (side/diameter/height 1) and centered so a scale of 1 fills a
// unit box around the object position.
func (r *Registry) ensure(key string) (cached, bool) {
	if c, ok := r.cache[key]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch key {
	case "cube":
		mesh = rl.GenMeshCube(1, 1, 1)
	case "sphere":
		// Radius 0.5 so diameter = 1, matching cube side length.
		mesh = rl.GenMeshSphere(0.5, defaultSphereRings, defaultSphereSlices)
	case "cylinder":
		mesh = rl.GenMeshCylinder(0.5, 1, defaultCylinderSlices)
	case "plane":
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[key] = c
	return c, true
}

// loadLitShader returns a shader that does simple directional light + ambient.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

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
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity, and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// modelFix is the per-type model-space correction applied before the object
// transform. Raylib meshes are Y-up (cylinder rises along Y, plane lies in XZ);
// the editor world is Z-up, so those meshes get a +90° turn about X. The
// cylinder also needs a -0.5 lift first: raylib generates it with the base at
// Y=0, and the editor treats the object position as the primitive's center.
func modelFix(key string) (rl.Matrix, bool) {
	yUpToZUp := rl.MatrixRotateX(rl.Pi / 2)
	switch key {
	case "cylinder":
		return rl.MatrixMultiply(rl.MatrixTranslate(0, -0.5, 0), yUpToZUp), true
	case "plane":
		return yUpToZUp, true
	}
	return rl.Matrix{}, false
}

// Draw draws one instance of the given type with the full object transform:
// position, rotation (quaternion) and per-axis scale, tinted with the given
// color (e.g. a highlight tint for selected objects).
// Must be called between BeginMode3D and EndMode3D.
// SetView must be called once per frame before drawing so lit primitives get shading.
// Unknown types are skipped. "cube", "sphere", "cylinder", and "plane" are created on first use.
func (r *Registry) Draw(primType string, position rl.Vector3, rotation rl.Quaternion, scale rl.Vector3, tint rl.Color) {
	c, ok := r.ensure(primType)
	if !ok {
		return
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}

	sx, sy, sz := scale.X, scale.Y, scale.Z
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	// Applied first to last: model-space fix, scale, rotation, translation.
	transform := rl.MatrixScale(sx, sy, sz)
	if fix, ok := modelFix(primType); ok {
		transform = rl.MatrixMultiply(fix, transform)
	}
	transform = rl.MatrixMultiply(transform, rl.QuaternionToMatrix(rotation))
	transform = rl.MatrixMultiply(transform, rl.MatrixTranslate(position.X, position.Y, position.Z))
	rl.DrawMesh(c.mesh, c.mtl, transform)
}
