package texture

import (
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"sort"
	"sync"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
)

// Names of the textures the renderer looks up.
const (
	Floor      = "floor"
	Wall       = "wall"
	Grate      = "grate"
	EnemyFront = "enemy_front"
	EnemyBack  = "enemy_back"
	EnemyLeft  = "enemy_left"
	EnemyRight = "enemy_right"
	Item       = "item"
)

// itemNoiseSeed seeds the generated item texture.
const itemNoiseSeed = 1

// Store maps texture names to loaded textures. Loading happens once at
// startup; afterwards the store is only read.
type Store struct {
	mu          sync.RWMutex
	textures    map[string]*Texture
	placeholder *Texture
}

// NewStore creates a store holding only the generated item texture.
func NewStore() *Store {
	s := &Store{
		textures:    make(map[string]*Texture),
		placeholder: Placeholder(),
	}
	s.textures[Item] = Noise(64, 64, itemNoiseSeed)
	return s
}

// Decode reads an image file (PNG, BMP or TGA) into a Texture.
func Decode(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	tex := FromImage(img)
	if tex.Width == 0 || tex.Height == 0 {
		return nil, fmt.Errorf("texture %s is empty", path)
	}
	return tex, nil
}

// Load decodes the file at path under name. A failure is logged and the
// placeholder is stored instead, so rendering always has something to sample.
func (s *Store) Load(name, path string) {
	tex, err := Decode(path)
	if err != nil {
		log.Printf("[Textures] %v; using placeholder for %q", err, name)
		tex = s.placeholder
	} else if tex.Width&(tex.Width-1) != 0 {
		log.Printf("[Textures] %q width %d is not a power of two; wrapping falls back to modulo", name, tex.Width)
	}
	s.Set(name, tex)
}

// LoadAll loads every name → path entry in a stable order.
func (s *Store) LoadAll(paths map[string]string) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.Load(name, paths[name])
	}
}

// Set stores tex under name.
func (s *Store) Set(name string, tex *Texture) {
	s.mu.Lock()
	s.textures[name] = tex
	s.mu.Unlock()
}

// Get returns the named texture, or the placeholder when it was never loaded.
func (s *Store) Get(name string) *Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tex, ok := s.textures[name]; ok {
		return tex
	}
	return s.placeholder
}
