package config

// DefaultBundleSuffixes returns the directory suffixes treated as opaque bundles
func DefaultBundleSuffixes() []string {
	return []string{".app"}
}

// GetDefault returns the sample configuration written by "config init"
func GetDefault() *Config {
	return &Config{
		Directory: "~/Downloads",
		Categories: Categories{
			{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp", ".heic"}},
			{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".md", ".pages"}},
			{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".csv", ".ods", ".numbers"}},
			{Name: "Presentations", Extensions: []string{".ppt", ".pptx", ".key", ".odp"}},
			{Name: "Audio", Extensions: []string{".mp3", ".wav", ".aac", ".flac", ".ogg", ".m4a"}},
			{Name: "Videos", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".webm"}},
			{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"}},
			{Name: "Installers", Extensions: []string{".dmg", ".pkg", ".exe", ".msi", ".deb", ".rpm", ".appimage"}},
			{Name: "Code", Extensions: []string{".py", ".go", ".js", ".ts", ".html", ".css", ".json", ".sh", ".java", ".c", ".cpp"}},
		},
		BundleSuffixes: DefaultBundleSuffixes(),
	}
}
