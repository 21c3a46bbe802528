package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"

	"github.com/decker502/tearoom/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont 使用内置 Go 字体时传给 LoadFont 的路径
const DefaultFont = ""

// ResourceManager is responsible for centralized management of scene resources.
// It provides loading and caching for textures and font faces, so that each
// resource is decoded only once.
//
// Lookup order for a path: the embedded resource filesystem first (when
// initialized and the file exists there), then the local disk.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Resources are loaded from the
// game loop goroutine only.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: path -> Image
	fontFaceCache map[string]*text.GoTextFace // Cache for text faces: path:size -> Face
	fontSources   map[string]*text.GoTextFaceSource

	placeholder *ebiten.Image
}

// NewResourceManager creates and initializes a new ResourceManager instance.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		fontFaceCache: make(map[string]*text.GoTextFace),
		fontSources:   make(map[string]*text.GoTextFaceSource),
	}
}

// readFile 读取资源：优先嵌入资源，其次本地文件
func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Returns an error if the file cannot be read or decoded; it never panics.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadImageOrPlaceholder 加载图片，失败时记录日志并返回 1x1 白色占位图
//
// 缺失的贴图不会中断场景，占位图会按纯色渲染
func (rm *ResourceManager) LoadImageOrPlaceholder(path string) *ebiten.Image {
	img, err := rm.LoadImage(path)
	if err == nil {
		return img
	}
	log.Printf("[ResourceManager] %v, using placeholder", err)
	if rm.placeholder == nil {
		rm.placeholder = ebiten.NewImage(1, 1)
		rm.placeholder.Fill(color.White)
	}
	// 缓存占位图，避免每帧重复读取失败的文件
	rm.imageCache[path] = rm.placeholder
	return rm.placeholder
}

// LoadFont loads a TrueType/OpenType font face of the given size.
// path == DefaultFont selects the built-in Go Regular font.
// Font sources are parsed once and shared between sizes.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, ok := rm.fontSources[path]
	if !ok {
		fontData := goregular.TTF
		if path != DefaultFont {
			data, err := rm.readFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
			}
			fontData = data
		}

		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.fontSources[path] = source
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// LoadFontOrDefault 加载字体，失败时回退到内置 Go 字体
// 内置字体也无法解析时返回 nil（渲染系统会跳过文字）
func (rm *ResourceManager) LoadFontOrDefault(path string, size float64) text.Face {
	face, err := rm.LoadFont(path, size)
	if err == nil {
		return face
	}
	if path != DefaultFont {
		log.Printf("[ResourceManager] %v, falling back to built-in font", err)
		if face, err = rm.LoadFont(DefaultFont, size); err == nil {
			return face
		}
	}
	log.Printf("[ResourceManager] built-in font unavailable: %v", err)
	return nil
}
