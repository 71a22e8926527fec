package game

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/embedded"
)

// 内置字体名称
const (
	FontRegular = "goregular"
	FontBold    = "gobold"
)

// builtinFonts 内置字体数据（golang.org/x/image/font/gofont）
var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// ResourceManager 管理字体与配置资源的加载和缓存
type ResourceManager struct {
	fontSourceCache map[string]*text.GoTextFaceSource // 字体名 -> 字体源
	fontFaceCache   map[string]*text.GoTextFace       // "名称:字号" -> 字体
}

// NewResourceManager creates and initializes a new ResourceManager instance.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// LoadFont loads a font face by name and size, caching the result.
//
// Parameters:
//   - name: a builtin font name (FontRegular, FontBold) or a path to a TTF/OTF file.
//   - size: The font size in pixels.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, ok := rm.fontSourceCache[name]
	if !ok {
		fontData, builtin := builtinFonts[name]
		if !builtin {
			var err error
			fontData, err = os.ReadFile(name)
			if err != nil {
				return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
			}
		}

		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
		}
		rm.fontSourceCache[name] = source
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// LoadTierTable 加载按键档位表
//
// 查找顺序：嵌入资源 -> 文件系统 -> 内置默认表
func (rm *ResourceManager) LoadTierTable(path string) *config.TierTable {
	if embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err == nil {
			table, err := config.ParseTierTable(data)
			if err == nil {
				log.Printf("[ResourceManager] 加载嵌入档位表: %s", path)
				return table
			}
			log.Printf("[ResourceManager] Warning: embedded tier table invalid: %v", err)
		}
	}

	table, err := config.LoadTierTable(path)
	if err == nil {
		log.Printf("[ResourceManager] 加载档位表: %s", path)
		return table
	}

	log.Printf("[ResourceManager] Warning: %v (using builtin tier table)", err)
	return config.DefaultTierTable()
}
