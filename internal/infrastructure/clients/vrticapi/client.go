package vrticapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	"github.com/euprava/vrtic-dashboard/pkg/config"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

// HTTPClient talks to the facility and auth services. The zero token source
// makes every protected call fail as unauthenticated.
type HTTPClient struct {
	facilityURL string
	authURL     string
	httpClient  *http.Client
	metrics     *observability.Metrics
	tokens      providers.TokenSource
}

var _ providers.DashboardAPI = (*HTTPClient)(nil)
var _ providers.DashboardAPIFactory = (*HTTPClient)(nil)

// NewClient creates a client for the configured upstream services.
// Requests carry no client-side timeout; only the caller's context bounds them.
func NewClient(cfg config.UpstreamConfig, metrics *observability.Metrics) *HTTPClient {
	return &HTTPClient{
		facilityURL: strings.TrimRight(cfg.FacilityURL, "/"),
		authURL:     strings.TrimRight(cfg.AuthURL, "/"),
		httpClient:  &http.Client{},
		metrics:     metrics,
	}
}

// ForSession returns a copy of the client bound to tokens
func (c *HTTPClient) ForSession(tokens providers.TokenSource) providers.DashboardAPI {
	bound := *c
	bound.tokens = tokens
	return &bound
}

// FacilityURL returns the facility service base URL for display
func (c *HTTPClient) FacilityURL() string {
	return c.facilityURL
}

func (c *HTTPClient) ListFacilities(ctx context.Context, opts providers.ListOptions) ([]entities.Facility, error) {
	query := url.Values{}
	if opts.Sort == entities.SortByFreePlaces {
		query.Set("sort", string(entities.SortByFreePlaces))
	}
	endpoint := c.facilityURL + "/vrtici"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.do(ctx, "list_facilities", http.MethodGet, endpoint, nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Facility](body, validateFacility)
}

func (c *HTTPClient) GetFacility(ctx context.Context, id string) (*entities.Facility, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("facility id is required")
	}
	endpoint := fmt.Sprintf("%s/vrtici/%s", c.facilityURL, url.PathEscape(id))
	body, err := c.do(ctx, "get_facility", http.MethodGet, endpoint, nil, false)
	if err != nil {
		return nil, err
	}
	out := &entities.Facility{}
	if err := decodeObject(body, validateFacility, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateFacility(ctx context.Context, input entities.FacilityInput) error {
	_, err := c.do(ctx, "create_facility", http.MethodPost, c.facilityURL+"/vrtici", input, true)
	return err
}

func (c *HTTPClient) UpdateFacility(ctx context.Context, id string, input entities.FacilityInput) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("facility id is required")
	}
	endpoint := fmt.Sprintf("%s/vrtici/%s", c.facilityURL, url.PathEscape(id))
	_, err := c.do(ctx, "update_facility", http.MethodPut, endpoint, input, true)
	return err
}

func (c *HTTPClient) DeleteFacility(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("facility id is required")
	}
	endpoint := fmt.Sprintf("%s/vrtici/%s", c.facilityURL, url.PathEscape(id))
	_, err := c.do(ctx, "delete_facility", http.MethodDelete, endpoint, nil, true)
	return err
}

func (c *HTTPClient) ListCritical(ctx context.Context) ([]entities.Facility, error) {
	body, err := c.do(ctx, "list_critical", http.MethodGet, c.facilityURL+"/vrtici/kriticni", nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Facility](body, validateFacility)
}

func (c *HTTPClient) MunicipalityReport(ctx context.Context) ([]entities.MunicipalityReport, error) {
	body, err := c.do(ctx, "municipality_report", http.MethodGet, c.facilityURL+"/vrtici/izvestaj/opstina", nil, false)
	if err != nil {
		return nil, err
	}
	return decodeList[entities.MunicipalityReport](body, validateReport)
}

// MunicipalityReportPDF returns the report as a PDF document
func (c *HTTPClient) MunicipalityReportPDF(ctx context.Context) ([]byte, error) {
	body, err := c.do(ctx, "municipality_report_pdf", http.MethodGet, c.facilityURL+"/vrtici/izvestaj/opstina?format=pdf", nil, false)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, apperrors.NewDecodeError("report is not a PDF document", nil)
	}
	return body, nil
}

// Ping probes the facility service root
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodGet, c.facilityURL+"/", nil, false)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	payload := entities.Credentials{Email: email, Password: password}
	body, err := c.do(ctx, "login", http.MethodPost, c.authURL+"/auth/login", payload, false)
	if err != nil {
		return nil, err
	}
	out := &entities.AuthResult{}
	if err := decodeObject(body, validateAuthResult, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Register(ctx context.Context, creds entities.Credentials) error {
	_, err := c.do(ctx, "register", http.MethodPost, c.authURL+"/auth/register", creds, false)
	return err
}

func (c *HTTPClient) Profile(ctx context.Context) (*entities.Profile, error) {
	body, err := c.do(ctx, "profile", http.MethodGet, c.authURL+"/auth/profile", nil, true)
	if err != nil {
		return nil, err
	}
	out := &entities.Profile{}
	if err := decodeObject(body, validateProfile, out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues exactly one request and returns the raw 2xx body
func (c *HTTPClient) do(ctx context.Context, operation, method, endpoint string, payload interface{}, auth bool) ([]byte, error) {
	var token string
	if auth {
		var ok bool
		if c.tokens != nil {
			token, ok = c.tokens.Get(ctx)
		}
		if !ok {
			return nil, apperrors.NewUnauthenticatedError("no access token stored")
		}
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("cannot encode request: %v", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	ctx, span := observability.StartSpan(ctx, "vrticapi."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", endpoint),
	)

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apperrors.NewTransportError("cannot build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.RecordUpstreamMetric(ctx, c.metrics, operation, 0, time.Since(start))
		span.SetStatus(codes.Error, "transport failure")
		observability.RecordError(span, err)
		return nil, apperrors.NewTransportError(operation+" failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observability.RecordUpstreamMetric(ctx, c.metrics, operation, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		span.SetStatus(codes.Error, "body read failure")
		return nil, apperrors.NewTransportError("cannot read "+operation+" response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		observability.LoggerFromContext(ctx).Debug().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Msg("upstream request failed")
		return nil, apperrors.NewRequestFailedError(resp.StatusCode, string(body))
	}

	return body, nil
}
