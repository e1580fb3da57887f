package community

var palette = []string{
	"#8b5cf6",
	"#06b6d4",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#ec4899",
	"#84cc16",
	"#6366f1",
	"#f97316",
	"#14b8a6",
	"#a855f7",
	"#0ea5e9",
	"#22c55e",
	"#eab308",
	"#f43f5e",
	"#d946ef",
	"#65a30d",
	"#3b82f6",
}

// Color returns the palette color for a group ordinal.
func Color(ordinal int) string {
	if ordinal < 0 {
		ordinal = -ordinal
	}
	return palette[ordinal%len(palette)]
}
