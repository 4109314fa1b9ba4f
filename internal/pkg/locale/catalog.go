package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v2"

	"github.com/Xinecraft/swat-julia/internal/pkg/logger"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog resolves message keys for one locale.
type Catalog struct {
	tag      language.Tag
	printer  *message.Printer
	messages map[string]string
}

// Load builds the catalog for locale from the embedded locale files.
func Load(locale string) (*Catalog, error) {
	return LoadFromFS(embeddedFS, locale)
}

// LoadFromFS builds the catalog for locale from locales/*.yaml in fsys.
// Keys missing from the requested locale, or an unknown locale, fall back
// to BaseLocale.
func LoadFromFS(fsys fs.FS, locale string) (*Catalog, error) {
	files, err := readFiles(fsys)
	if err != nil {
		return nil, err
	}
	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	messages := make(map[string]string, len(base.Messages))
	for key, value := range base.Messages {
		messages[key] = value
	}
	if file, ok := files[tag.String()]; ok {
		for key, value := range file.Messages {
			messages[key] = value
		}
	} else if tag.String() != BaseLocale {
		logger.WarnCF("locale", "Locale not found, using base locale", map[string]any{
			"locale": tag.String(),
			"base":   BaseLocale,
		})
	}

	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := builder.SetString(tag, key, messages[key]); err != nil {
			return nil, fmt.Errorf("register %q: %w", key, err)
		}
	}

	return &Catalog{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(builder)),
		messages: messages,
	}, nil
}

func readFiles(fsys fs.FS) (map[string]catalogFile, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	files := make(map[string]catalogFile, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: locale %q: %w", path, file.Locale, err)
		}
		if _, exists := files[tag.String()]; exists {
			return nil, fmt.Errorf("catalog %s: locale %s already defined", path, tag)
		}
		files[tag.String()] = file
	}
	return files, nil
}

func (c *Catalog) Locale() string {
	return c.tag.String()
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Format resolves key and substitutes args positionally. An unknown key is
// used as the template itself. Templates without verbs ignore args.
func (c *Catalog) Format(key string, args ...any) string {
	template, ok := c.messages[key]
	if !ok {
		template = key
	}
	if !strings.Contains(template, "%") {
		return template
	}
	return c.printer.Sprintf(key, args...)
}
