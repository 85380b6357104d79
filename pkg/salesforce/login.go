package salesforce

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
)

// Credentials holds a username/password/security-token triple for the SOAP
// login exchange. Domain selects the login host, e.g. "test" for sandboxes;
// empty means the production login host.
type Credentials struct {
	Username      string
	Password      string
	SecurityToken string
	Domain        string
}

const loginEnvelope = `<?xml version="1.0" encoding="utf-8" ?>
<env:Envelope xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Body>
    <n1:login xmlns:n1="urn:partner.soap.sforce.com">
      <n1:username>%s</n1:username>
      <n1:password>%s</n1:password>
    </n1:login>
  </env:Body>
</env:Envelope>`

type loginResult struct {
	ServerURL string `xml:"Body>loginResponse>result>serverUrl"`
	SessionID string `xml:"Body>loginResponse>result>sessionId"`
}

type loginFault struct {
	Code    string `xml:"Body>Fault>faultcode"`
	Message string `xml:"Body>Fault>faultstring"`
}

// LoginError is a failed SOAP login exchange, e.g. INVALID_LOGIN.
type LoginError struct {
	Code    string
	Message string
}

func (e *LoginError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("salesforce login failed: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("salesforce login failed: %s", e.Message)
}

// Login performs the SOAP username/password/security-token exchange and
// returns a connected client. This is the only operation that talks to the
// login host instead of an org instance.
func Login(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	host := "login.salesforce.com"
	if creds.Domain != "" {
		host = creds.Domain + ".salesforce.com"
	}

	// Resolve the API version before building the endpoint URL.
	probe := NewClient("", "", opts...)
	loginURL := fmt.Sprintf("https://%s/services/Soap/u/%s", host, probe.apiVersion)

	body := fmt.Sprintf(loginEnvelope,
		xmlEscape(creds.Username),
		xmlEscape(creds.Password+creds.SecurityToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set(contentTypeHeader, "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	resp, err := probe.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fault loginFault
		if err := xml.Unmarshal(respBody, &fault); err == nil && fault.Message != "" {
			return nil, &LoginError{Code: fault.Code, Message: fault.Message}
		}
		return nil, &LoginError{Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, loginURL)}
	}

	var result loginResult
	if err := xml.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if result.SessionID == "" || result.ServerURL == "" {
		return nil, &LoginError{Message: "login response missing sessionId or serverUrl"}
	}

	serverURL, err := neturl.Parse(result.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server URL %q: %w", result.ServerURL, err)
	}

	instanceURL := fmt.Sprintf("%s://%s", serverURL.Scheme, serverURL.Host)
	return NewClient(instanceURL, result.SessionID, opts...), nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
