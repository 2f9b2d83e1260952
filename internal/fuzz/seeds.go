package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// inlineSeeds покрывают углы грамматики, которых может не быть в testdata.
var inlineSeeds = []string{
	"",
	"x <- 1\n",
	`if(x==1){print("x is equal to 1")}`,
	"if (x == 1) {\n  print(\"x is equal to 1\")\n}\n",
	"a[[b[1]]] <- c(1, 2)\n",
	"df %>% filter(x %in% ys)\n",
	"sq <- sapply(xs, \\(x) -x^2)\n",
	"`odd name` <- 0x1FL + 1e-3 + .5i\n",
	"\"unterminated\n",
	"/* never closed",
	"`never closed",
	"x <- 'a\\'b' # trailing \t\n",
	"} else {\n",
	"100 %",
	"данные <- 1\r\n",
	"\x00\xff\xfe",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.R файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".R" && ext != ".r" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
