// Package plans indexes the meal-plan documents the assistant has
// written and answers free-text queries over them, so earlier plans can
// be recalled mid-conversation.
package plans

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

const embeddingDim = 512
const chunkSize = 800

// Result is one matching excerpt of a saved plan.
type Result struct {
	Filename string
	Text     string
}

type indexedChunk struct {
	filename  string
	text      string
	embedding []float32
}

// Index is a lazily refreshed search index over one directory of plan
// documents (.md, .txt and .pdf). Embeddings are local feature hashes,
// no external model is involved.
type Index struct {
	dir string

	mu        sync.Mutex
	chunks    []indexedChunk
	signature string
}

func NewIndex(dir string) *Index {
	return &Index{dir: dir}
}

// Search re-scans the directory if its contents changed since the last
// call, then returns the topK most relevant excerpts. An empty or
// missing directory yields no results and no error.
func (ix *Index) Search(query string, topK int) ([]Result, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.refresh(); err != nil {
		return nil, fmt.Errorf("plans: refresh index: %w", err)
	}

	if len(ix.chunks) == 0 || topK <= 0 {
		return nil, nil
	}

	queryVec := embed(query)

	type scored struct {
		chunk indexedChunk
		score float32
	}
	results := make([]scored, 0, len(ix.chunks))
	for _, c := range ix.chunks {
		results = append(results, scored{chunk: c, score: cosineSimilarity(queryVec, c.embedding)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if topK > len(results) {
		topK = len(results)
	}
	out := make([]Result, topK)
	for i := range out {
		out[i] = Result{Filename: results[i].chunk.filename, Text: results[i].chunk.text}
	}
	return out, nil
}

// refresh rebuilds the index when the directory's file set or any
// modification time changed. Plans directories stay small, so a full
// rebuild is cheap.
func (ix *Index) refresh() error {
	signature, err := ix.scanSignature()
	if err != nil {
		return err
	}
	if signature == ix.signature {
		return nil
	}

	entries, err := os.ReadDir(ix.dir)
	if os.IsNotExist(err) {
		ix.chunks = nil
		ix.signature = signature
		return nil
	}
	if err != nil {
		return err
	}

	var chunks []indexedChunk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		text, err := readDocument(filepath.Join(ix.dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %q: %w", entry.Name(), err)
		}
		if text == "" {
			continue
		}

		for _, piece := range splitChunks(text, chunkSize) {
			chunks = append(chunks, indexedChunk{
				filename:  entry.Name(),
				text:      piece,
				embedding: embed(piece),
			})
		}
	}

	ix.chunks = chunks
	ix.signature = signature
	return nil
}

func (ix *Index) scanSignature() (string, error) {
	entries, err := os.ReadDir(ix.dir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s|%d|%d;", entry.Name(), info.Size(), info.ModTime().UnixNano())
	}
	return sb.String(), nil
}

func readDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".pdf":
		return readPDF(path)
	default:
		return "", nil
	}
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// splitChunks breaks text on paragraph boundaries into pieces of at
// most maxLen characters.
func splitChunks(text string, maxLen int) []string {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")

	var chunks []string
	var current strings.Builder

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(p)+2 > maxLen {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// embed converts text into a fixed-size vector using feature hashing.
func embed(text string) []float32 {
	vec := make([]float32, embeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[int(h.Sum32())%embeddingDim]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm = math.Sqrt(norm); norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return float32(dot / denom)
}
