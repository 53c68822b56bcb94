package enums

import "fmt"

// FileType defines the broad kind of an uploaded file.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
	FileTypeVideo FileType = "video"
)

var validFileTypes = []FileType{
	FileTypeImage,
	FileTypePDF,
	FileTypeVideo,
}

func (f FileType) String() string {
	return string(f)
}

func (f FileType) IsValid() bool {
	for _, candidate := range validFileTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFileType converts raw input into a FileType.
func ParseFileType(value string) (FileType, error) {
	for _, candidate := range validFileTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q", value)
}
