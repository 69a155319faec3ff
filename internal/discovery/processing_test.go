package discovery

import (
	"errors"
	"testing"
)

func TestBuildProcessingConfig_ChunkSizeBounds(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"below minimum", 99, true},
		{"at minimum", 100, false},
		{"mid range", 300, false},
		{"at maximum", 500, false},
		{"above maximum", 501, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
				Strategy:       ParsingLayout,
				EnableChunking: true,
				ChunkSize:      tt.size,
			})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("size %d: want ErrInvalidConfig, got %v", tt.size, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("size %d: unexpected error: %v", tt.size, err)
			}
			got := cfg.GetChunkingConfig().GetLayoutBasedChunkingConfig().GetChunkSize()
			if got != int32(tt.size) {
				t.Errorf("size %d: chunking config carries %d", tt.size, got)
			}
		})
	}
}

func TestBuildProcessingConfig_ZeroChunkSizeDefaults(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy:       ParsingLayout,
		EnableChunking: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.GetChunkingConfig().GetLayoutBasedChunkingConfig().GetChunkSize(); got != MaxChunkSize {
		t.Errorf("want default chunk size %d, got %d", MaxChunkSize, got)
	}
}

func TestBuildProcessingConfig_ChunkingRequiresLayout(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	// An in-range chunk size must not rescue a non-layout strategy.
	for _, strategy := range []ParsingStrategy{ParsingDigital, ParsingOCR} {
		_, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
			Strategy:       strategy,
			EnableChunking: true,
			ChunkSize:      300,
		})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("strategy %q: want ErrInvalidConfig, got %v", strategy, err)
		}
	}

	cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy:       ParsingLayout,
		EnableChunking: true,
		ChunkSize:      300,
	})
	if err != nil {
		t.Fatalf("layout strategy: unexpected error: %v", err)
	}
	if cfg.GetChunkingConfig() == nil {
		t.Error("layout strategy: chunking config not attached")
	}
}

func TestBuildProcessingConfig_ChunkSizeIgnoredWithoutChunking(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	// An out-of-range size is irrelevant while chunking is disabled.
	cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy:  ParsingDigital,
		ChunkSize: 9999,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetChunkingConfig() != nil {
		t.Error("chunking config attached although chunking is disabled")
	}
}

func TestBuildProcessingConfig_UnknownStrategy(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	_, err := c.BuildProcessingConfig("ds", &ProcessingOptions{Strategy: "fancy"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}

func TestBuildProcessingConfig_OCROverrideOnlyForPDF(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	for _, ft := range []FileType{FileTypeHTML, FileTypeDOCX, FileTypePPTX, FileTypeXLSM, FileTypeXLSX} {
		_, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
			Strategy:  ParsingDigital,
			Overrides: map[FileType]ParsingOverride{ft: {Strategy: ParsingOCR}},
		})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ocr override for %q: want ErrInvalidConfig, got %v", ft, err)
		}
	}

	cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy: ParsingDigital,
		Overrides: map[FileType]ParsingOverride{
			FileTypePDF: {Strategy: ParsingOCR, UseNativeText: true},
		},
	})
	if err != nil {
		t.Fatalf("ocr override for pdf: unexpected error: %v", err)
	}
	ov := cfg.GetParsingConfigOverrides()["pdf"]
	if ov.GetOcrParsingConfig() == nil {
		t.Fatal("pdf override is not an ocr parsing config")
	}
	if !ov.GetOcrParsingConfig().GetUseNativeText() {
		t.Error("use_native_text not carried into the pdf override")
	}
}

func TestBuildProcessingConfig_OverrideValidation(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	_, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy:  ParsingDigital,
		Overrides: map[FileType]ParsingOverride{"epub": {Strategy: ParsingDigital}},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unsupported file type: want ErrInvalidConfig, got %v", err)
	}

	_, err = c.BuildProcessingConfig("ds", &ProcessingOptions{
		Strategy:  ParsingDigital,
		Overrides: map[FileType]ParsingOverride{FileTypeHTML: {Strategy: "fancy"}},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown override strategy: want ErrInvalidConfig, got %v", err)
	}
}

func TestBuildProcessingConfig_OverridesStoredByFileType(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	cfg, err := c.BuildProcessingConfig("ds", &ProcessingOptions{
		// Overrides are allowed to use layout even when the base strategy
		// could not support chunking — only the base strategy is checked.
		Strategy: ParsingDigital,
		Overrides: map[FileType]ParsingOverride{
			FileTypeHTML: {Strategy: ParsingDigital},
			FileTypeDOCX: {Strategy: ParsingLayout},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	overrides := cfg.GetParsingConfigOverrides()
	if len(overrides) != 2 {
		t.Fatalf("want 2 overrides, got %d", len(overrides))
	}
	if overrides["html"].GetDigitalParsingConfig() == nil {
		t.Error("html override is not a digital parsing config")
	}
	if overrides["docx"].GetLayoutParsingConfig() == nil {
		t.Error("docx override is not a layout parsing config")
	}
}

func TestBuildProcessingConfig_NameAndDefaultParsing(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, nil)

	cfg, err := c.BuildProcessingConfig("my-store", &ProcessingOptions{Strategy: ParsingLayout})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantName := "projects/test-project/locations/global/collections/default_collection/dataStores/my-store/documentProcessingConfig"
	if cfg.GetName() != wantName {
		t.Errorf("config name:\n got %q\nwant %q", cfg.GetName(), wantName)
	}
	if cfg.GetDefaultParsingConfig().GetLayoutParsingConfig() == nil {
		t.Error("default parsing config is not layout")
	}
}
