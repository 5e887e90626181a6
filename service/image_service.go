package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/NBNEORIGIN/signmaker/layout"
	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/render"
	"github.com/NBNEORIGIN/signmaker/svgdoc"
	"github.com/NBNEORIGIN/signmaker/utils"
)

// boundsFileName is the hot-editable layout bounds CSV inside the assets dir.
const boundsFileName = "layout_modes.csv"

// masterKind is the manufacturing template variant; GenerateMasterSVG falls
// back to "main" when no dedicated master template is authored.
const masterKind = "master_design_file"

// fontSpec resolves a product font key to a family/weight pair.
type fontSpec struct {
	Family string
	Weight string
}

var fonts = map[string]fontSpec{
	"arial_bold":  {Family: "Arial", Weight: "bold"},
	"arial_heavy": {Family: "Arial Black", Weight: "normal"},
}

var defaultFontSpec = fontSpec{Family: "Arial", Weight: "bold"}

// TemplateNotFoundError reports a missing template file for a specific
// (color, size, orientation, kind) combination. Batch callers omit the kind
// and continue; single-image callers surface it.
type TemplateNotFoundError struct {
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Path)
}

// ImageService generates marketplace images and master design files for sign
// products. Implements ImageServiceInterface.
type ImageService struct {
	assetsDir  string
	iconsDir   string
	renderer   Renderer
	calculator *layout.Calculator
}

// NewImageService creates a new ImageService. assetsDir holds the SVG
// templates and the layout bounds CSV; iconsDir holds the icon library.
func NewImageService(assetsDir, iconsDir string, renderer Renderer) *ImageService {
	return &ImageService{
		assetsDir:  assetsDir,
		iconsDir:   iconsDir,
		renderer:   renderer,
		calculator: &layout.Calculator{BoundsPath: filepath.Join(assetsDir, boundsFileName)},
	}
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// templatePath resolves the template file for a variant, or a
// TemplateNotFoundError when the file is not authored.
func (s *ImageService) templatePath(spec models.RenderSpec, kind string) (string, error) {
	path := filepath.Join(s.assetsDir, utils.TemplateFilename(spec.Color, spec.Size, spec.Orientation, kind))
	if _, err := os.Stat(path); err != nil {
		return "", &TemplateNotFoundError{Path: path}
	}
	return path, nil
}

// composeDocument runs geometry → layout → injection for one template and
// returns the composed document tree.
func (s *ImageService) composeDocument(spec models.RenderSpec, templatePath string) (*svgdoc.Element, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	root, err := svgdoc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	bounds, err := layout.ResolveSignBounds(spec.Size, spec.Orientation)
	if err != nil {
		return nil, err
	}

	mode := layout.ParseLayoutMode(spec.LayoutMode)
	result := s.calculator.Calculate(bounds, mode, spec.TextLines,
		spec.IconScale, spec.TextScale, spec.Size, spec.Orientation)

	// QA position offsets apply on top of the computed icon position.
	iconRect := result.Icon
	iconRect.X += spec.IconOffsetX
	iconRect.Y += spec.IconOffsetY

	for _, iconFile := range spec.IconFiles {
		icon, err := svgdoc.LoadIcon(s.iconsDir, iconFile)
		if err != nil {
			// Best effort: one bad asset reference must not block
			// the whole product's image generation.
			var missing *svgdoc.AssetMissingError
			if errors.As(err, &missing) {
				log.Printf("⚠️  Icon not found, skipping: %s", iconFile)
			} else {
				log.Printf("⚠️  Failed to load icon %s, skipping: %v", iconFile, err)
			}
			continue
		}
		svgdoc.InjectIcon(root, icon, iconRect)
	}

	font, ok := fonts[spec.Font]
	if !ok {
		font = defaultFontSpec
	}
	for _, te := range result.Text {
		svgdoc.AddText(root, te.Text, te.X, te.Y, te.FontSize, te.Anchor, font.Family, font.Weight)
	}

	return root, nil
}

// GenerateProductImage generates one marketplace image variant as PNG bytes.
func (s *ImageService) GenerateProductImage(product *models.Product, kind string) ([]byte, error) {
	spec := product.RenderSpec()

	path, err := s.templatePath(spec, kind)
	if err != nil {
		return nil, err
	}

	root, err := s.composeDocument(spec, path)
	if err != nil {
		return nil, err
	}

	png, err := s.renderer.Rasterize(svgdoc.Marshal(root, false), render.Options{Scale: render.DefaultScale})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s image for %s: %w", kind, product.MNumber, err)
	}
	return png, nil
}

// GenerateAllImages generates every marketplace image kind independently.
// Kinds whose template is missing are logged and omitted; partial results
// are the expected steady state while templates are still being authored.
func (s *ImageService) GenerateAllImages(product *models.Product) map[string][]byte {
	images := make(map[string][]byte)

	for _, kind := range utils.ImageKinds {
		png, err := s.GenerateProductImage(product, kind)
		if err != nil {
			var notFound *TemplateNotFoundError
			if errors.As(err, &notFound) {
				log.Printf("⚠️  Template not found for %s: %v", product.MNumber, err)
			} else {
				log.Printf("❌ Error generating %s for %s: %v", kind, product.MNumber, err)
			}
			continue
		}
		images[kind] = png
	}

	return images
}

// GenerateMasterSVG composes the manufacturing hand-off document and returns
// it as SVG bytes rather than rasterizing.
func (s *ImageService) GenerateMasterSVG(product *models.Product) ([]byte, error) {
	spec := product.RenderSpec()

	path, err := s.templatePath(spec, masterKind)
	if err != nil {
		// Fall back to the main template if no master is authored.
		path, err = s.templatePath(spec, "main")
		if err != nil {
			return nil, err
		}
	}

	root, err := s.composeDocument(spec, path)
	if err != nil {
		return nil, err
	}

	return svgdoc.Marshal(root, true), nil
}
