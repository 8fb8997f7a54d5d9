package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/go-dedup/simhash"
	"github.com/gofrs/uuid"
	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/internal/tools"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/runner/rules"
	"github.com/helviojunior/brparser/pkg/writers"
	"golang.org/x/exp/maps"
)

const (
	chunkSize   = 100 * 1_000 // 100kb
	maxPeekSize = 25 * 1_000
)

var newLineRegexp = regexp.MustCompile("\n")

// hamming distance at or below this marks a near-duplicate finding
const simhashThreshold = 3

type Identifiers struct {
	Rules    []*rules.Rule
	Keywords map[string]struct{}
}

// Runner drains the Files channel through a ParserDriver and fans results
// out to the configured writers.
type Runner struct {
	Parser ParserDriver

	// options for the Runner to consider
	options Options
	// writers are the result writers to use
	writers []writers.Writer
	// log handler
	log *slog.Logger

	// Files to scan.
	Files chan string

	// in case we need to bail
	ctx    context.Context
	cancel context.CancelFunc

	status *Status

	// Execution id
	uid string

	Identifiers Identifiers

	// prefilter is a ahocorasick struct used for doing efficient string
	// matching given a set of words (keywords from the rules)
	prefilter ahocorasick.Trie

	// files larger than this will be skipped
	MaxTargetMegaBytes int

	// content fingerprints of parsed files, used to skip near-duplicates
	sh        *simhash.SimhashBase
	seenFiles []uint64
	seenMutex sync.Mutex
}

// ErrNearDuplicateFile marks a file whose content is a near copy of an
// already parsed one.
var ErrNearDuplicateFile = errors.New("near-duplicate of an already parsed file")

type Status struct {
	Parsed     int
	Error      int
	Skipped    int
	Cpf        int
	Cnpj       int
	Phone      int
	Email      int
	Spin       string
	Running    bool
	IsTerminal bool
	log        *slog.Logger
}

func (st *Status) Print() {
	if st.IsTerminal {
		st.Spin = ascii.GetNextSpinner(st.Spin)

		fmt.Fprintf(os.Stderr,
			"%s\n %s read: %d, failed: %d, ignored: %d               \n %s cpf: %d, cnpj: %d, phone: %d, email: %d\r\033[A\033[A",
			"                                                                        ",
			ascii.ColoredSpin(st.Spin),
			st.Parsed,
			st.Error,
			st.Skipped,
			strings.Repeat(" ", 4-len(st.Spin)),
			st.Cpf,
			st.Cnpj,
			st.Phone,
			st.Email)

	} else {
		st.log.Info("STATUS",
			"read", st.Parsed, "failed", st.Error, "ignored", st.Skipped,
			"cpf", st.Cpf, "cnpj", st.Cnpj, "phone", st.Phone, "email", st.Email)
	}
}

func (st *Status) AddResult(result *models.File) {
	st.Parsed += 1
	if result.Failed {
		st.Error += 1
		return
	}
}

// NewRunner gets a new Runner ready for parsing.
// It's up to the caller to call Close() on the runner
func NewRunner(logger *slog.Logger, parser ParserDriver, opts Options, writers []writers.Writer) (*Runner, error) {
	ctx, cancel := context.WithCancel(context.Background())
	id := Identifiers{
		Rules:    []*rules.Rule{},
		Keywords: make(map[string]struct{}),
	}
	id.LoadRules()

	return &Runner{
		Parser:             parser,
		options:            opts,
		writers:            writers,
		Files:              make(chan string),
		log:                logger,
		ctx:                ctx,
		cancel:             cancel,
		uid:                uuid.Must(uuid.NewV4()).String(),
		Identifiers:        id,
		prefilter:          *ahocorasick.NewTrieBuilder().AddStrings(maps.Keys(id.Keywords)).Build(),
		MaxTargetMegaBytes: 200,
		sh:                 simhash.NewSimhash(),
		status: &Status{
			Parsed:     0,
			Error:      0,
			Skipped:    0,
			Spin:       "",
			Running:    true,
			IsTerminal: term.IsTerminal(int(os.Stdin.Fd())),
			log:        logger,
		},
	}, nil
}

func (id *Identifiers) LoadRules() error {
	id.Rules = []*rules.Rule{
		rules.CPF(),
		rules.CNPJ(),
		rules.Phone(),
		rules.Email(),
	}

	uniqueKeywords := make(map[string]struct{})
	for _, r := range id.Rules {
		for _, keyword := range r.Keywords {
			k := strings.ToLower(keyword)
			if _, ok := uniqueKeywords[k]; ok {
				continue
			}
			uniqueKeywords[k] = struct{}{}
		}
	}
	id.Keywords = uniqueKeywords

	return nil
}

// Options returns the options this runner was built with.
func (run *Runner) Options() Options {
	return run.options
}

// ID returns the execution id of this runner.
func (run *Runner) ID() string {
	return run.uid
}

// runWriters takes a result and passes it to writers
func (run *Runner) runWriters(result *models.File) error {
	for _, writer := range run.writers {
		if err := writer.Write(result); err != nil {
			return err
		}
	}

	return nil
}

func (run *Runner) AddSkipped() {
	run.status.Skipped += 1
	run.status.Parsed += 1
}

// CountDocument bumps the per-kind status counter.
func (run *Runner) CountDocument(kind string) {
	switch kind {
	case "cpf":
		run.status.Cpf += 1
	case "cnpj":
		run.status.Cnpj += 1
	case "phone":
		run.status.Phone += 1
	case "email":
		run.status.Email += 1
	}
}

// Run executes the runner, processing targets as they arrive
// in the Files channel
func (run *Runner) Run() Status {
	defer run.Close()

	ascii.HideCursor()
	wg := sync.WaitGroup{}
	swg := sync.WaitGroup{}

	if !run.options.Logging.Silence {
		swg.Add(1)
		go func() {
			defer swg.Done()
			for run.status.Running {
				select {
				case <-run.ctx.Done():
					return
				default:
					run.status.Print()
					if run.status.IsTerminal {
						time.Sleep(time.Duration(time.Second / 4))
					} else {
						time.Sleep(time.Duration(time.Second * 30))
					}
				}
			}
		}()
	}

	// will spawn Parser.Threads number of "workers" as goroutines
	for w := 0; w < run.options.Parser.Threads; w++ {
		wg.Add(1)

		// start a worker
		go func() {
			defer wg.Done()
			for run.status.Running {
				select {
				case <-run.ctx.Done():
					return
				case filePath, ok := <-run.Files:
					if !ok || !run.status.Running {
						return
					}
					fileName := filepath.Base(filePath)
					logger := run.log.With("file", fileName)

					logger.Debug("Parsing")

					file, err := run.Parser.ParseFile(run, filePath)
					if err != nil {
						if file == nil {
							file = &models.File{FilePath: filePath, FileName: fileName}
						}
						file.Failed = true
						file.FailedReason = err.Error()
						logger.Error("failed to parse file", "err", err)
						run.status.AddResult(file)
						continue
					}

					if run.status.Running {
						if file != nil {
							run.status.AddResult(file)

							if err := run.runWriters(file); err != nil {
								logger.Error("failed to write result for file", "err", err)
							}
						} else {
							run.AddSkipped()
						}
					}
				}
			}
		}()
	}

	wg.Wait()
	run.status.Running = false
	swg.Wait()

	return *run.status
}

func (run *Runner) Close() {
	// close the driver
	run.Parser.Close()
	ascii.ClearLine()
	ascii.ShowCursor()
}

// DetectString scans the given string and returns a list of findings
func (run *Runner) DetectString(content string) []models.Finding {
	return run.Detect(Fragment{
		Raw: content,
	})
}

// Detect scans the given fragment and returns a list of findings
func (run *Runner) Detect(fragment Fragment) []models.Finding {
	var findings []models.Finding

	// add newline indices for location calculation in detectRule
	fragment.newlineIndices = newLineRegexp.FindAllStringIndex(fragment.Raw, -1)

	// build keyword map for prefiltering rules
	keywords := make(map[string]bool)
	normalizedRaw := strings.ToLower(fragment.Raw)
	matches := run.prefilter.MatchString(normalizedRaw)
	for _, m := range matches {
		keywords[normalizedRaw[m.Pos():int(m.Pos())+len(m.Match())]] = true
	}

	for _, rule := range run.Identifiers.Rules {
		if len(rule.Keywords) == 0 {
			// if no keywords are associated with the rule always scan the
			// fragment using the rule
			findings = append(findings, run.detectRule(fragment, rule)...)
			continue
		}

		// check if keywords are in the fragment
		for _, k := range rule.Keywords {
			if _, ok := keywords[strings.ToLower(k)]; ok {
				findings = append(findings, run.detectRule(fragment, rule)...)
				break
			}
		}
	}

	return findings
}

// detectRule scans the given fragment for the given rule and returns a list of findings
func (run *Runner) detectRule(fragment Fragment, r *rules.Rule) []models.Finding {
	var (
		findings []models.Finding
		logger   = run.log.With("rule", r.RuleID)
	)

	if !run.status.Running {
		return findings
	}

	currentRaw := fragment.Raw

	// if flag configured and raw data size bigger than the flag
	if run.MaxTargetMegaBytes > 0 {
		rawLength := len(currentRaw) / 1000000
		if rawLength > run.MaxTargetMegaBytes {
			logger.Debug("skipping fragment: size", "size", rawLength, "max-size", run.MaxTargetMegaBytes)
			return findings
		}
	}

	// Replace the main encoding chars
	currentRaw = strings.Replace(currentRaw, "%40", "@", -1)
	currentRaw = strings.Replace(currentRaw, "%20", " ", -1)
	currentRaw = strings.Replace(currentRaw, "<br />", "\n", -1)
	currentRaw = strings.Replace(currentRaw, "<br/>", "\n", -1)
	currentRaw = strings.Replace(currentRaw, "<br>", "\n", -1)

	for _, matchIndex := range r.Regex.FindAllStringIndex(currentRaw, -1) {
		secret := strings.Trim(currentRaw[matchIndex[0]:matchIndex[1]], "\n\r\t ")

		// removes a possibly following line detected through '\n' in the
		// expression
		matchIndex[1] = matchIndex[0] + len(secret)

		loc := location(fragment, matchIndex)

		if matchIndex[1] > loc.endLineIndex {
			loc.endLineIndex = matchIndex[1]
		}

		finding := models.Finding{
			Description: r.Description,
			File:        fragment.FilePath,
			RuleID:      r.RuleID,
			StartLine:   loc.startLine,
			EndLine:     loc.endLine,
			StartColumn: loc.startColumn,
			EndColumn:   loc.endColumn,
			Secret:      secret,
			Match:       secret,
			Line:        fragment.Raw[loc.startLineIndex:loc.endLineIndex],
		}

		// Use the capture group as the secret, when the pattern has one
		groups := r.Regex.FindStringSubmatch(finding.Secret)
		if len(groups) >= 2 {
			if r.SecretGroup > 0 && len(groups) > r.SecretGroup {
				finding.Secret = groups[r.SecretGroup]
			} else {
				for _, s := range groups[1:] {
					if len(s) > 0 {
						finding.Secret = s
						break
					}
				}
			}
		}

		// check entropy
		entropy := shannonEntropy(finding.Secret)
		finding.Entropy = float32(entropy)
		if r.Entropy != 0.0 {
			// entropy is too low, skip this finding
			if entropy <= float64(r.Entropy) {
				logger.Debug("skipping finding: low entropy", "match", finding.Match, "entropy", finding.Entropy)
				continue
			}
		}

		if r.CheckGlobalStopWord {
			if ok, word := rules.ContainsStopWord(finding.Secret); ok {
				logger.Debug("skipping finding: stopword", "match", finding.Match, "stopword", word)
				continue
			}
		}

		// Process final finding
		ok, err := r.PostProcessor(&finding)
		if err != nil {
			logger.Debug("post-processing error", "finding", finding.Secret, "err", err)
			continue
		}
		if !ok { // Just ignore
			continue
		}

		// If all is OK, get near text
		nearIndexStart := loc.startLineIndex - run.options.Parser.NearTextSize
		if nearIndexStart < 0 {
			nearIndexStart = 0
		}
		nearIndexEnd := loc.endLineIndex + run.options.Parser.NearTextSize
		if nearIndexEnd <= nearIndexStart {
			nearIndexEnd = nearIndexStart + 1
		}
		if nearIndexEnd > len(fragment.Raw) {
			nearIndexEnd = len(fragment.Raw)
		}

		finding.Document.NearText = fragment.Raw[nearIndexStart:nearIndexEnd]
		finding.Document.Rule = r.RuleID
		finding.Document.Line = loc.startLine
		finding.Document.Entropy = finding.Entropy

		findings = append(findings, finding)
	}
	return findings
}

// DetectFile scans the file in chunks, appending every validated document
// to the model. Near-duplicate findings (by simhash of their surrounding
// text) are suppressed.
func (run *Runner) DetectFile(file *models.File) error {
	logger := run.log.With("path", file.FilePath)
	logger.Debug("Scanning path")

	f, err := os.Open(file.FilePath)
	if err != nil {
		if os.IsPermission(err) {
			logger.Warn("Skipping file: permission denied")
		}
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	fileInfo, err := f.Stat()
	if err != nil {
		return err
	}
	fileSize := fileInfo.Size()
	if run.MaxTargetMegaBytes > 0 {
		rawLength := fileSize / 1000000
		if rawLength > int64(run.MaxTargetMegaBytes) {
			logger.Debug("Skipping file: exceeds --max-target-megabytes", "size", rawLength)
			return errors.New("Skipping file: exceeds --max-target-megabytes")
		}
	}

	var (
		reader     = bufio.NewReaderSize(f, chunkSize)
		buf        = make([]byte, chunkSize)
		firstChunk = true
		totalLines = 0
		seenDigits = map[string]struct{}{}
	)
	for {
		n, err := reader.Read(buf)

		if n > 0 {
			// Only check the filetype at the start of file.
			if firstChunk {
				firstChunk = false

				if binary, mime := tools.IsBinary(buf[:n]); binary {
					return fmt.Errorf("Cannot parse %s files", mime) // skip binary files
				}

				// fingerprint the head of the file
				h := run.sh.GetSimhash(run.sh.NewWordFeatureSet(buf[:n]))
				if run.nearDuplicateFile(h) {
					return ErrNearDuplicateFile
				}
			}

			// Try to split chunks across large areas of whitespace, if possible.
			peekBuf := bytes.NewBuffer(buf[:n])
			if readErr := readUntilSafeBoundary(reader, n, maxPeekSize, peekBuf); readErr != nil {
				return readErr
			}

			chunk := peekBuf.String()
			linesInChunk := strings.Count(chunk, "\n")
			totalLines += linesInChunk
			fragment := Fragment{
				Raw:      chunk,
				Bytes:    peekBuf.Bytes(),
				FilePath: file.FilePath,
			}
			for _, finding := range run.Detect(fragment) {
				if !run.status.Running {
					return nil
				}

				doc := finding.Document

				// same digits in the same file count once
				key := doc.Kind + ":" + doc.Digits + ":" + doc.Formatted
				if _, ok := seenDigits[key]; ok {
					continue
				}
				seenDigits[key] = struct{}{}

				// need to add 1 since line counting starts at 1
				doc.Line += (totalLines - linesInChunk) + 1

				run.CountDocument(doc.Kind)
				file.AddDocument(doc)
			}
		}

		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// nearDuplicateFile registers h and reports whether an already parsed
// file carries a fingerprint within the hamming threshold.
func (run *Runner) nearDuplicateFile(h uint64) bool {
	run.seenMutex.Lock()
	defer run.seenMutex.Unlock()

	for _, s := range run.seenFiles {
		if simhash.Compare(s, h) <= simhashThreshold {
			return true
		}
	}
	run.seenFiles = append(run.seenFiles, h)
	return false
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// shannonEntropy calculates the entropy of data using the formula defined here:
// https://en.wiktionary.org/wiki/Shannon_entropy
func shannonEntropy(data string) (entropy float64) {
	if data == "" {
		return 0
	}

	charCounts := make(map[rune]int)
	for _, char := range data {
		charCounts[char]++
	}

	invLength := 1.0 / float64(len(data))
	for _, count := range charCounts {
		freq := float64(count) * invLength
		entropy -= freq * math.Log2(freq)
	}

	return entropy
}

// readUntilSafeBoundary consumes |r| until it finds two consecutive `\n`
// characters, up to |maxPeekSize|. This hopefully avoids splitting a
// document across chunks.
func readUntilSafeBoundary(r *bufio.Reader, n int, maxPeekSize int, peekBuf *bytes.Buffer) error {
	if peekBuf.Len() == 0 {
		return nil
	}

	// Does the buffer end in consecutive newlines?
	var (
		data         = peekBuf.Bytes()
		lastChar     = data[len(data)-1]
		newlineCount = 0 // Tracks consecutive newlines
	)
	if isWhitespace(lastChar) {
		for i := len(data) - 1; i >= 0; i-- {
			lastChar = data[i]
			if lastChar == '\n' {
				newlineCount++

				// Stop if two consecutive newlines are found
				if newlineCount >= 2 {
					return nil
				}
			} else if lastChar == '\r' || lastChar == ' ' || lastChar == '\t' {
				// Other whitespace characters don't reset the count
			} else {
				break
			}
		}
	}

	// If not, read ahead until we (hopefully) find some.
	newlineCount = 0
	for {
		data = peekBuf.Bytes()
		lastChar = data[len(data)-1]
		if lastChar == '\n' {
			newlineCount++

			// Stop if two consecutive newlines are found
			if newlineCount >= 2 {
				break
			}
		} else if lastChar == '\r' || lastChar == ' ' || lastChar == '\t' {
			// Other whitespace characters don't reset the count
		} else {
			newlineCount = 0 // Reset if a non-newline character is found
		}

		// Stop growing the buffer if it reaches maxSize
		if (peekBuf.Len() - n) >= maxPeekSize {
			break
		}

		// Read additional data into a temporary buffer
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		peekBuf.WriteByte(b)
	}
	return nil
}
