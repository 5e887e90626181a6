package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"
	"path"

	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/utils"
)

const (
	designSubfolder = "001 Design"
	masterSubfolder = "001 MASTER FILE"
)

// ExportService builds ZIP packages of product artwork in the staff folder layout
// Implements ExportServiceInterface
type ExportService struct {
	imageService ImageServiceInterface
}

// NewExportService creates a new ExportService instance
func NewExportService(imageService ImageServiceInterface) *ExportService {
	return &ExportService{
		imageService: imageService,
	}
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// ExportProducts renders every product and packs the results into a single ZIP.
// Each product gets a folder named by the staff convention containing the master
// SVG under "001 Design/001 MASTER FILE" and the rendered PNGs under "002 Images".
// Products whose artwork cannot be rendered at all are logged and omitted.
func (s *ExportService) ExportProducts(products []*models.Product) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	exported := 0
	for _, product := range products {
		if err := s.writeProduct(zw, product); err != nil {
			log.Printf("❌ Failed to export %s: %v", product.MNumber, err)
			continue
		}
		exported++
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize export archive: %w", err)
	}

	if exported == 0 {
		return nil, fmt.Errorf("no products could be exported")
	}

	log.Printf("🎉 Exported %d of %d products", exported, len(products))
	return buf.Bytes(), nil
}

func (s *ExportService) writeProduct(zw *zip.Writer, product *models.Product) error {
	folder := utils.ExportFolderName(product.MNumber, product.Description, product.Color, product.Size, product.MountingType)

	masterSVG, err := s.imageService.GenerateMasterSVG(product)
	if err != nil {
		return fmt.Errorf("failed to generate master SVG: %w", err)
	}

	masterPath := path.Join(folder, designSubfolder, masterSubfolder,
		fmt.Sprintf("%s MASTER FILE.svg", product.MNumber))
	if err := writeZipEntry(zw, masterPath, masterSVG); err != nil {
		return err
	}

	images := s.imageService.GenerateAllImages(product)
	if len(images) == 0 {
		return fmt.Errorf("no images rendered")
	}

	for _, kind := range utils.ImageKinds {
		pngData, ok := images[kind]
		if !ok {
			continue
		}
		imagePath := path.Join(folder, imagesSubfolder,
			fmt.Sprintf("%s - %s.png", product.MNumber, utils.ImageKindNumbers[kind]))
		if err := writeZipEntry(zw, imagePath, pngData); err != nil {
			return err
		}
	}

	return nil
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}
