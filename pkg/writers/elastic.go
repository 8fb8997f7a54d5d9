package writers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	elk "github.com/elastic/go-elasticsearch/v8"
	esapi "github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/helviojunior/brparser/internal/tools"
	logger "github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/models"
)

// ElasticWriter indexes results into an Elasticsearch cluster. The index
// name comes from the URI path, defaulting to "brparser". Documents go to
// a sibling "<index>_docs" index.
type ElasticWriter struct {
	Client *elk.Client
	Index  string
}

// NewElasticWriter returns a new Elasticsearch writer
func NewElasticWriter(uri string) (*ElasticWriter, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	username := u.User.Username()
	password, _ := u.User.Password()
	port := u.Port()
	if port == "" {
		port = "9200"
	}
	indexName := strings.Trim(u.EscapedPath(), "/ ")
	indexName = strings.SplitN(indexName, "/", 2)[0]
	if indexName == "" {
		indexName = "brparser"
	}

	wr := &ElasticWriter{
		Index: indexName,
	}

	conf := elk.Config{
		Addresses: []string{
			fmt.Sprintf("%s://%s:%s/", u.Scheme, u.Hostname(), port),
		},
		RetryOnStatus: []int{429, 502, 503, 504},
		RetryBackoff: func(i int) time.Duration {
			// A simple exponential delay
			d := time.Duration(math.Exp2(float64(i))) * time.Second
			logger.Debugf("Elastic retry, attempt: %d | Sleeping for %s...\n", i, d)
			return d
		},
		Transport: &http.Transport{
			MaxIdleConns:       10,
			IdleConnTimeout:    10 * time.Second,
			DisableCompression: true,
		},
	}

	if username != "" && password != "" {
		conf.Username = username
		conf.Password = password
	}

	wr.Client, err = elk.NewClient(conf)
	if err != nil {
		return nil, err
	}

	// File index
	err = wr.CreateIndex(wr.Index, `{
            "settings": {
                "number_of_replicas": 1,
                "index": {"highlight.max_analyzed_offset": 10000000}
            },
            "mappings": {
                "properties": {
                    "parsed_at": {"type": "date"},
                    "fingerprint": {"type": "keyword"},
                    "file_name": {"type": "text"},
                    "file_path": {"type": "keyword"},
                    "mime_type": {"type": "keyword"},
                    "size": {"type": "long"},
                    "rows": {"type": "long"},
                    "provider": {"type": "keyword"}
                }
            }
        }`)
	if err != nil {
		return nil, err
	}

	// Document index
	err = wr.CreateIndex(wr.Index+"_docs", `{
            "settings": {
                "number_of_replicas": 1,
                "index": {"highlight.max_analyzed_offset": 10000000}
            },
            "mappings": {
                "properties": {
                    "time": {"type": "date"},
                    "fingerprint": {"type": "keyword"},
                    "kind": {"type": "keyword"},
                    "rule": {"type": "keyword"},
                    "raw": {"type": "keyword"},
                    "digits": {"type": "keyword"},
                    "formatted": {"type": "keyword"},
                    "column": {"type": "keyword"},
                    "line": {"type": "long"},
                    "domain": {"type": "keyword"},
                    "entropy": {"type": "long"},
                    "near_text": {"type": "text"},
                    "file_id": {"type": "keyword"}
                }
            }
        }`)
	if err != nil {
		return nil, err
	}

	return wr, nil
}

// CreateIndex creates an index with the given mapping when it does not
// exist yet.
func (ew *ElasticWriter) CreateIndex(name string, mapping string) error {
	ctx := context.Background()

	res, err := esapi.IndicesExistsRequest{
		Index: []string{name},
	}.Do(ctx, ew.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: name,
		Body:  strings.NewReader(mapping),
	}.Do(ctx, ew.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index %s: %s", name, string(body))
	}
	io.Copy(io.Discard, res.Body)

	return nil
}

// Write a result and its documents
func (ew *ElasticWriter) Write(result *models.File) error {
	ctx := context.Background()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      ew.Index,
		DocumentID: result.Fingerprint,
		Body:       bytes.NewReader(data),
	}.Do(ctx, ew.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error indexing result: %s", string(body))
	}
	io.Copy(io.Discard, res.Body)

	if len(result.Documents) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, doc := range result.Documents {
		id := tools.GetHashFromValues(result.Fingerprint, doc.Kind, doc.Digits, doc.Column, doc.Line, doc.Raw)

		meta := fmt.Sprintf(`{"index":{"_id":"%s"}}`, id)
		line, err := json.Marshal(map[string]interface{}{
			"time":        doc.Time.Format(time.RFC3339),
			"fingerprint": id,
			"file_id":     result.Fingerprint,
			"kind":        doc.Kind,
			"rule":        doc.Rule,
			"raw":         doc.Raw,
			"digits":      doc.Digits,
			"formatted":   doc.Formatted,
			"column":      doc.Column,
			"line":        doc.Line,
			"domain":      strings.ToLower(doc.Domain),
			"entropy":     doc.Entropy,
			"near_text":   doc.NearText,
		})
		if err != nil {
			return err
		}

		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(line)
		buf.WriteByte('\n')
	}

	bres, err := ew.Client.Bulk(bytes.NewReader(buf.Bytes()), ew.Client.Bulk.WithIndex(ew.Index+"_docs"))
	if err != nil {
		return err
	}
	defer bres.Body.Close()
	if bres.IsError() {
		body, _ := io.ReadAll(bres.Body)
		return fmt.Errorf("bulk indexing error: %s", string(body))
	}
	io.Copy(io.Discard, bres.Body)

	return nil
}
