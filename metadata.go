package insider

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// FilingMetadata identifies a filing: the subject company's CIK, the
// accession number, and the form type when known. It travels alongside a
// record; the pipeline itself never needs it.
type FilingMetadata struct {
	CIK       string `json:"cik,omitempty"`
	Accession string `json:"accessionNumber,omitempty"`
	FormType  string `json:"formType,omitempty"`
}

var edgarURLPattern = regexp.MustCompile(`/edgar/data/(\d+)/(\d+)/`)

// ExtractMetadataFromURL parses an EDGAR archive URL like
// https://www.sec.gov/Archives/edgar/data/1631574/000119312525314736/ownership.xml
// into CIK and accession number.
func ExtractMetadataFromURL(url string) (*FilingMetadata, error) {
	matches := edgarURLPattern.FindStringSubmatch(url)
	if len(matches) < 3 {
		return nil, fmt.Errorf("no CIK and accession in URL %q", url)
	}

	// Bare 18-digit accessions format as XXXXXXXXXX-XX-XXXXXX.
	accession := matches[2]
	if len(accession) == 18 {
		accession = accession[:10] + "-" + accession[10:12] + "-" + accession[12:]
	}

	return &FilingMetadata{
		CIK:       matches[1],
		Accession: accession,
	}, nil
}

// ExtractMetadataFromDocument pulls metadata out of a parsed ownership
// document: the issuer CIK and the declared form type.
func ExtractMetadataFromDocument(doc *OwnershipDocument) *FilingMetadata {
	return &FilingMetadata{
		CIK:      doc.Issuer.CIK,
		FormType: doc.DocumentType,
	}
}

// MergeMetadata combines URL-derived and document-derived metadata. URL
// data wins where both sources know a field; the document contributes
// the form type.
func MergeMetadata(urlMeta, docMeta *FilingMetadata) *FilingMetadata {
	merged := &FilingMetadata{}

	if urlMeta != nil {
		merged.CIK = urlMeta.CIK
		merged.Accession = urlMeta.Accession
	}

	if docMeta != nil {
		if merged.CIK == "" {
			merged.CIK = docMeta.CIK
		}
		merged.FormType = docMeta.FormType
	}

	return merged
}

// GenerateFilename builds a stable filename from metadata, falling back
// to a generic name as fields go missing.
// Full form: {CIK}-{accession}_insider.{ext}
func GenerateFilename(meta *FilingMetadata, ext string) string {
	if meta.CIK != "" && meta.Accession != "" {
		return fmt.Sprintf("%s-%s_insider.%s", meta.CIK, meta.Accession, ext)
	}
	if meta.CIK != "" {
		return fmt.Sprintf("%s_insider.%s", meta.CIK, ext)
	}
	return fmt.Sprintf("insider.%s", ext)
}

// SaveOptions configures SaveFiles.
type SaveOptions struct {
	SaveOriginal bool
	OriginalPath string // empty selects generated naming
	OutputPath   string // empty skips the JSON output file
	OutputDir    string // empty writes to the current directory
}

// SaveResult reports where SaveFiles wrote.
type SaveResult struct {
	OriginalPath string
	OutputPath   string
}

// SaveFiles writes the original document bytes and/or the JSON rendering
// of output per opts.
func SaveFiles(original []byte, output any, meta *FilingMetadata, opts SaveOptions) (*SaveResult, error) {
	result := &SaveResult{}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	if opts.SaveOriginal {
		originalPath := opts.OriginalPath
		if originalPath == "" {
			originalPath = GenerateFilename(meta, "xml")
		}
		if opts.OutputDir != "" {
			originalPath = filepath.Join(opts.OutputDir, originalPath)
		}

		if err := os.WriteFile(originalPath, original, 0644); err != nil {
			return nil, fmt.Errorf("save original document: %w", err)
		}
		result.OriginalPath = originalPath
	}

	if opts.OutputPath != "" {
		outputPath := opts.OutputPath
		if opts.OutputDir != "" && !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(opts.OutputDir, outputPath)
		}

		data, err := FormatJSON(output)
		if err != nil {
			return nil, err
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("save JSON output: %w", err)
		}
		result.OutputPath = outputPath
	}

	return result, nil
}

// FormatJSON renders v as indented JSON.
func FormatJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return data, nil
}
