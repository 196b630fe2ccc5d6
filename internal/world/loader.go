package world

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"level-editor/internal/editor"
)

// ObjectDef is the YAML definition of one scene object (e.g. assets/scene.yaml).
type ObjectDef struct {
	Name      string     `yaml:"name"`
	Primitive string     `yaml:"primitive"`
	Folder    string     `yaml:"folder,omitempty"`
	Parent    string     `yaml:"parent,omitempty"` // by name, must be defined earlier
	Group     string     `yaml:"group,omitempty"`
	Position  [3]float32 `yaml:"position"`
	Yaw       float32    `yaml:"yaw,omitempty"` // degrees about Z
	Scale     [3]float32 `yaml:"scale,omitempty"`
	Kind      string     `yaml:"kind,omitempty"`      // primitive (default), static, skeletal
	Collision string     `yaml:"collision,omitempty"` // block (default), query, physics, none
}

// SceneFile is the top-level YAML document.
type SceneFile struct {
	Objects []ObjectDef `yaml:"objects"`
}

// unitBox is the local bounds of every primitive mesh (unit-sized, centered).
var unitBox = editor.Box{
	Min: rl.NewVector3(-0.5, -0.5, -0.5),
	Max: rl.NewVector3(0.5, 0.5, 0.5),
}

// LoadScene reads a scene seed file and spawns its objects into a new scene.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return BuildScene(file)
}

// BuildScene spawns the definitions into a new scene. Parents are resolved by
// name among earlier definitions; groups by shared group label.
func BuildScene(file SceneFile) (*Scene, error) {
	s := NewScene()
	byName := make(map[string]editor.ObjectID)
	groups := make(map[string]uint64)
	for i, def := range file.Objects {
		spec, err := toSpec(def, byName, groups)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}
		id := s.Spawn(spec)
		if def.Name != "" {
			byName[def.Name] = id
		}
	}
	return s, nil
}

func toSpec(def ObjectDef, byName map[string]editor.ObjectID, groups map[string]uint64) (SpawnSpec, error) {
	kind, err := parseKind(def.Kind)
	if err != nil {
		return SpawnSpec{}, err
	}
	collision, err := parseCollision(def.Collision)
	if err != nil {
		return SpawnSpec{}, err
	}

	var parent editor.ObjectID
	if def.Parent != "" {
		id, ok := byName[def.Parent]
		if !ok {
			return SpawnSpec{}, fmt.Errorf("unknown parent %q", def.Parent)
		}
		parent = id
	}

	var group uint64
	if def.Group != "" {
		if _, ok := groups[def.Group]; !ok {
			groups[def.Group] = uint64(len(groups)) + 1
		}
		group = groups[def.Group]
	}

	scale := rl.NewVector3(def.Scale[0], def.Scale[1], def.Scale[2])
	if scale == (rl.Vector3{}) {
		scale = rl.NewVector3(1, 1, 1)
	}
	t := editor.Transform{
		Position: rl.NewVector3(def.Position[0], def.Position[1], def.Position[2]),
		Rotation: rl.QuaternionFromAxisAngle(editor.Up(), def.Yaw*math32.Pi/180),
		Scale:    scale,
	}

	primitive := def.Primitive
	if primitive == "" {
		primitive = "cube"
	}
	return SpawnSpec{
		Name:      def.Name,
		Folder:    def.Folder,
		Parent:    parent,
		Group:     group,
		Primitive: primitive,
		Transform: t,
		Components: []ComponentSpec{
			{Kind: kind, Collision: collision, Bounds: unitBox},
		},
	}, nil
}

func parseKind(s string) (editor.ComponentKind, error) {
	switch s {
	case "", "primitive":
		return editor.KindPrimitive, nil
	case "static":
		return editor.KindStaticMesh, nil
	case "skeletal":
		return editor.KindSkeletalMesh, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func parseCollision(s string) (editor.CollisionMode, error) {
	switch s {
	case "", "block":
		return editor.CollisionQueryAndPhysics, nil
	case "physics":
		return editor.CollisionPhysicsOnly, nil
	case "query":
		return editor.CollisionQueryOnly, nil
	case "none":
		return editor.CollisionNone, nil
	}
	return 0, fmt.Errorf("unknown collision %q", s)
}
