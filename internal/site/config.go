package site

import (
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/thoreinstein/fmgen/internal/paths"
)

// Defaults applied by NewConfig.
const (
	DefaultSiteTitle   = "My Shokunin Site"
	DefaultLanguage    = "en-GB"
	DefaultBaseURL     = "http://localhost:8000"
	DefaultContentDir  = "content"
	DefaultOutputDir   = "public"
	DefaultTemplateDir = "templates"
	DefaultTemplate    = "default"
	DefaultWorkers     = 4
)

var languagePattern = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

// Config describes a site build.
type Config struct {
	// ID identifies the build in logs.
	ID          uuid.UUID `json:"id"`
	SiteName    string    `json:"site_name"`
	SiteTitle   string    `json:"site_title"`
	Description string    `json:"description"`
	// Language is a tag of the form "en-GB".
	Language string `json:"language"`
	// BaseURL must be an absolute http or https URL.
	BaseURL     string `json:"base_url"`
	ContentDir  string `json:"content_dir"`
	OutputDir   string `json:"output_dir"`
	TemplateDir string `json:"template_dir"`
	ServeDir    string `json:"serve_dir,omitempty"`
	Workers     int    `json:"workers"`
}

// NewConfig returns a Config for siteName with every other field defaulted.
func NewConfig(siteName string) Config {
	return Config{
		ID:          uuid.New(),
		SiteName:    siteName,
		SiteTitle:   DefaultSiteTitle,
		Language:    DefaultLanguage,
		BaseURL:     DefaultBaseURL,
		ContentDir:  DefaultContentDir,
		OutputDir:   DefaultOutputDir,
		TemplateDir: DefaultTemplateDir,
		Workers:     DefaultWorkers,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.By(nonNilUUID)),
		validation.Field(&c.SiteName, validation.Required),
		validation.Field(&c.Language, validation.Required, validation.Match(languagePattern).Error("must look like en-GB")),
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.ContentDir, validation.Required, validation.By(safePath)),
		validation.Field(&c.OutputDir, validation.Required, validation.By(safePath)),
		validation.Field(&c.TemplateDir, validation.Required, validation.By(safePath)),
		validation.Field(&c.ServeDir, validation.When(c.ServeDir != "", validation.By(safePath))),
		validation.Field(&c.Workers, validation.Min(1)),
	)
}

func nonNilUUID(value any) error {
	if id, _ := value.(uuid.UUID); id == uuid.Nil {
		return validation.NewError("validation_uuid_required", "must be a non-nil UUID")
	}
	return nil
}

func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_base_url", "must be an absolute http or https URL")
	}
	return nil
}

func safePath(value any) error {
	s, _ := value.(string)
	if err := paths.ValidatePath(s); err != nil {
		return validation.NewError("validation_path", err.Error())
	}
	return nil
}
