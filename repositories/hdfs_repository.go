package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vlgmic/warehouse-ingest/models"
)

// HdfsRepository is the remote-filesystem side of the ingestion pipeline.
// All operations mutate durable remote state and none are transactional with
// each other; DeleteRecursive is used best-effort by its callers.
type HdfsRepository interface {
	Probe(ctx context.Context, root string) error
	Mkdirs(ctx context.Context, path string) error
	Upload(ctx context.Context, remotePath string, content io.Reader) error
	DeleteRecursive(ctx context.Context, path string) error
}

// WebHdfsRepository talks to a single WebHDFS endpoint, selected at startup
// by probing the primary and then the standby namenode. It is stateless over
// its http.Client and safe for concurrent use.
type WebHdfsRepository struct {
	baseUrl  string
	username string
	client   *http.Client
}

func NewWebHdfsRepository(baseUrl, username string, client *http.Client) WebHdfsRepository {
	if client == nil {
		client = http.DefaultClient
	}
	// The two-phase write needs to see the namenode's 307 itself instead of
	// having the client silently replay the PUT against the datanode.
	noRedirect := *client
	noRedirect.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return WebHdfsRepository{
		baseUrl:  strings.TrimSuffix(baseUrl, "/"),
		username: username,
		client:   &noRedirect,
	}
}

func (repo WebHdfsRepository) BaseUrl() string {
	return repo.baseUrl
}

func (repo WebHdfsRepository) operationUrl(path, op string, params map[string]string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	values := url.Values{}
	values.Set("op", op)
	values.Set("user.name", repo.username)
	for key, value := range params {
		values.Set(key, value)
	}
	return fmt.Sprintf("%s/webhdfs/v1%s?%s", repo.baseUrl, path, values.Encode())
}

func (repo WebHdfsRepository) do(ctx context.Context, method, rawUrl string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawUrl, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build webhdfs request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	return repo.client.Do(req)
}

func readErrorBody(resp *http.Response) string {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return string(body)
}

// Probe runs a LISTSTATUS on root. It only serves endpoint selection at
// startup: once an endpoint is chosen, a later outage fails the request
// instead of triggering a failover.
func (repo WebHdfsRepository) Probe(ctx context.Context, root string) error {
	resp, err := repo.do(ctx, http.MethodGet, repo.operationUrl(root, "LISTSTATUS", nil), nil)
	if err != nil {
		return errors.Wrapf(models.ErrHdfsUnreachable, "%s: %v", repo.baseUrl, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(models.ErrHdfsUnreachable, "%s: LISTSTATUS returned %d", repo.baseUrl, resp.StatusCode)
	}
	return nil
}

// Mkdirs creates path and any missing parents. It is idempotent: creating an
// existing directory succeeds.
func (repo WebHdfsRepository) Mkdirs(ctx context.Context, path string) error {
	resp, err := repo.do(ctx, http.MethodPut, repo.operationUrl(path, "MKDIRS", nil), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to create remote directory %s", path)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Newf("failed to create remote directory %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// Upload is the WebHDFS two-phase write: the namenode first hands back the
// datanode url to write to, then the actual transfer goes to the datanode.
// On any error the caller must treat the upload as not having happened.
func (repo WebHdfsRepository) Upload(ctx context.Context, remotePath string, content io.Reader) error {
	createUrl := repo.operationUrl(remotePath, "CREATE", map[string]string{
		"noredirect": "true",
		"overwrite":  "true",
	})
	resp, err := repo.do(ctx, http.MethodPut, createUrl, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to negotiate upload of %s", remotePath)
	}

	dataNodeUrl, err := uploadLocation(resp)
	if err != nil {
		return errors.Wrapf(err, "failed to negotiate upload of %s", remotePath)
	}

	resp, err = repo.do(ctx, http.MethodPut, dataNodeUrl, content)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s to datanode", remotePath)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return errors.Newf("failed to write %s to datanode: status %d (%s)",
			remotePath, resp.StatusCode, readErrorBody(resp))
	}
	return nil
}

func uploadLocation(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload struct {
			Location string `json:"Location"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return "", errors.Wrap(err, "could not decode the datanode location")
		}
		if payload.Location == "" {
			return "", errors.New("namenode answered without a datanode location")
		}
		return payload.Location, nil
	case http.StatusTemporaryRedirect:
		location := resp.Header.Get("Location")
		if location == "" {
			return "", errors.New("redirect answer without a Location header")
		}
		return location, nil
	default:
		return "", errors.Newf("namenode returned status %d", resp.StatusCode)
	}
}

// DeleteRecursive removes a directory and all its contents. A path that does
// not exist is not an error.
func (repo WebHdfsRepository) DeleteRecursive(ctx context.Context, path string) error {
	deleteUrl := repo.operationUrl(path, "DELETE", map[string]string{"recursive": "true"})
	resp, err := repo.do(ctx, http.MethodDelete, deleteUrl, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to delete remote directory %s", path)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Newf("failed to delete remote directory %s: status %d", path, resp.StatusCode)
	}
	return nil
}
