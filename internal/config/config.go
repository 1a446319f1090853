package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer and game configuration values
type Config struct {
	Display    DisplayConfig     `yaml:"display"`
	Render     RenderConfig      `yaml:"render"`
	Sprites    SpriteConfig      `yaml:"sprites"`
	Textures   map[string]string `yaml:"textures"`
	Level      LevelConfig       `yaml:"level"`
	Controller ControllerConfig  `yaml:"controller"`
	Game       GameConfig        `yaml:"game"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	WindowScale  int    `yaml:"window_scale"`
	Resizable    bool   `yaml:"resizable"`
}

// RenderConfig carries the projection and falloff constants of the raycaster.
type RenderConfig struct {
	WallScale       float64 `yaml:"wall_scale"`        // projected height = screenHeight*WallScale/distance
	MaxSteps        int     `yaml:"max_steps"`         // DDA step budget per column
	MaxWallDistance float64 `yaml:"max_wall_distance"` // walls farther than this are not drawn
	FieldOfView     float64 `yaml:"field_of_view"`     // lateral ray spread at the screen edges
	PlaneHeight     float64 `yaml:"plane_height"`      // distance from eye to floor and ceiling planes
	BobScale        float64 `yaml:"bob_scale"`         // screen rows per unit of camera height
	RenderDistance  float64 `yaml:"render_distance"`   // fog numerator
	FloorCutoff     float64 `yaml:"floor_cutoff"`      // floor/ceiling beyond this are black
	Workers         int     `yaml:"workers"`           // >1 enables the column worker pool
}

type SpriteConfig struct {
	EnemyRadius         float64 `yaml:"enemy_radius"`
	ItemRadius          float64 `yaml:"item_radius"`
	EnemyHeightFraction float64 `yaml:"enemy_height_fraction"`
	ItemHeightFraction  float64 `yaml:"item_height_fraction"`
	FaceEpsilon         float64 `yaml:"face_epsilon"`
	ItemCapColor        uint32  `yaml:"item_cap_color"`
	ItemCapRows         int     `yaml:"item_cap_rows"`
}

type LevelConfig struct {
	MapFile string `yaml:"map_file"`
	Scale   int    `yaml:"scale"`
}

type ControllerConfig struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	RunSpeed         float64 `yaml:"run_speed"`
	CrouchSpeed      float64 `yaml:"crouch_speed"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	Gravity          float64 `yaml:"gravity"`
	CrouchLevel      float64 `yaml:"crouch_level"`
	BodyRadius       float64 `yaml:"body_radius"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians of yaw per pixel
	PitchSensitivity float64 `yaml:"pitch_sensitivity"` // screen rows of pitch per pixel
}

type GameConfig struct {
	EnemySpeed     float64 `yaml:"enemy_speed"`
	HearingRadius  float64 `yaml:"hearing_radius"`
	CatchDistance  float64 `yaml:"catch_distance"`
	PickupReach    float64 `yaml:"pickup_reach"`
	PickupWidth    float64 `yaml:"pickup_width"`
	ItemsRequired  int     `yaml:"items_required"`
	ExitReach      float64 `yaml:"exit_reach"`
	SnapshotFolder string  `yaml:"snapshot_folder"`
}

// Default returns a configuration populated with every tunable.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  400,
			ScreenHeight: 300,
			WindowTitle:  "Maze Caster",
			WindowScale:  2,
			Resizable:    true,
		},
		Render: RenderConfig{
			WallScale:       16,
			MaxSteps:        300,
			MaxWallDistance: 200,
			FieldOfView:     1.0,
			PlaneHeight:     8,
			BobScale:        20,
			RenderDistance:  15000,
			FloorCutoff:     15000,
			Workers:         1,
		},
		Sprites: SpriteConfig{
			EnemyRadius:         0.7,
			ItemRadius:          0.3,
			EnemyHeightFraction: 0.25,
			ItemHeightFraction:  1.0 / 32,
			FaceEpsilon:         0.01,
			ItemCapColor:        0xE6B800,
			ItemCapRows:         2,
		},
		Textures: map[string]string{
			"floor":       "assets/textures/floor.png",
			"wall":        "assets/textures/wall.png",
			"grate":       "assets/textures/grate.png",
			"enemy_front": "assets/textures/enemy_front.png",
			"enemy_back":  "assets/textures/enemy_back.png",
			"enemy_left":  "assets/textures/enemy_left.png",
			"enemy_right": "assets/textures/enemy_right.png",
		},
		Level: LevelConfig{
			MapFile: "assets/maps/maze.map",
			Scale:   10,
		},
		Controller: ControllerConfig{
			WalkSpeed:        0.5,
			RunSpeed:         0.8,
			CrouchSpeed:      0.2,
			RotationSpeed:    0.0076,
			JumpImpulse:      1.2,
			Gravity:          0.1,
			CrouchLevel:      -0.5,
			BodyRadius:       0.35,
			MouseSensitivity: 0.005,
			PitchSensitivity: 1.0,
		},
		Game: GameConfig{
			EnemySpeed:     0.5,
			HearingRadius:  40,
			CatchDistance:  0.8,
			PickupReach:    20,
			PickupWidth:    0.4,
			ItemsRequired:  20,
			ExitReach:      15,
			SnapshotFolder: "snapshots",
		},
	}
}

// LoadConfig loads the configuration from a YAML file, starting from Default
// so fields absent from the file keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate reports the first value that would make rendering impossible.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Render.WallScale <= 0:
		return fmt.Errorf("render.wall_scale must be positive")
	case c.Render.MaxSteps <= 0:
		return fmt.Errorf("render.max_steps must be positive")
	case c.Render.FieldOfView <= 0:
		return fmt.Errorf("render.field_of_view must be positive")
	case c.Render.RenderDistance <= 0:
		return fmt.Errorf("render.render_distance must be positive")
	case c.Sprites.EnemyRadius <= 0 || c.Sprites.ItemRadius <= 0:
		return fmt.Errorf("sprite radii must be positive")
	case c.Sprites.EnemyHeightFraction <= 0 || c.Sprites.ItemHeightFraction <= 0:
		return fmt.Errorf("sprite height fractions must be positive")
	case c.Level.Scale <= 0:
		return fmt.Errorf("level.scale must be positive")
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetWindowSize returns the window size in screen pixels.
func (c *Config) GetWindowSize() (int, int) {
	scale := c.Display.WindowScale
	if scale <= 0 {
		scale = 1
	}
	return c.Display.ScreenWidth * scale, c.Display.ScreenHeight * scale
}
