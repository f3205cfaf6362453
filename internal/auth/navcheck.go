package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"golang.org/x/net/publicsuffix"
)

const defaultNavURL = "https://api.bilibili.com/x/web-interface/nav"

// LoginReport holds the decoded account state from the nav endpoint.
type LoginReport struct {
	IsLogin   bool
	Uname     string
	Mid       int64
	VipType   int
	VipStatus int
}

// ActiveVIP reports whether the account holds a currently active VIP.
func (r LoginReport) ActiveVIP() bool {
	return r.VipType > 0 && r.VipStatus == 1
}

// String renders the report for display.
func (r LoginReport) String() string {
	var b strings.Builder

	loginWord := "False"
	if r.IsLogin {
		loginWord = "True"
	}
	b.WriteString("isLogin: " + loginWord)

	if !r.IsLogin {
		b.WriteString("\nLog in via your browser, then retry.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nuname: %s", r.Uname)
	fmt.Fprintf(&b, "\nmid: %d", r.Mid)
	if r.ActiveVIP() {
		fmt.Fprintf(&b, "\nvip: active VIP (vipType=%d)", r.VipType)
	} else {
		b.WriteString("\nvip: no active VIP")
	}
	return b.String()
}

type navResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		IsLogin   bool   `json:"isLogin"`
		Uname     string `json:"uname"`
		Mid       int64  `json:"mid"`
		VipType   int    `json:"vipType"`
		VipStatus int    `json:"vipStatus"`
	} `json:"data"`
}

// FetchLoginReport queries the nav endpoint with the given cookies.
func FetchLoginReport(ctx context.Context, navURL string, cookies []*http.Cookie) (LoginReport, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return LoginReport{}, err
	}
	client := &http.Client{Jar: jar}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, navURL, nil)
	if err != nil {
		return LoginReport{}, err
	}
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	resp, err := client.Do(req)
	if err != nil {
		return LoginReport{}, fmt.Errorf("nav request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("failed to close nav response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LoginReport{}, fmt.Errorf("failed to read nav response: %w", err)
	}

	var nav navResponse
	if err := json.Unmarshal(body, &nav); err != nil {
		return LoginReport{}, fmt.Errorf("failed to decode nav response: %w", err)
	}
	if nav.Code != 0 {
		return LoginReport{}, fmt.Errorf("nav endpoint returned code %d: %s", nav.Code, nav.Message)
	}

	return LoginReport{
		IsLogin:   nav.Data.IsLogin,
		Uname:     nav.Data.Uname,
		Mid:       nav.Data.Mid,
		VipType:   nav.Data.VipType,
		VipStatus: nav.Data.VipStatus,
	}, nil
}

// CheckLogin resolves cookies for the configured source and queries the
// platform for the account state.
func CheckLogin(ctx context.Context, source consts.CookieSource, cookieFile string) (LoginReport, error) {
	var (
		cookies []*http.Cookie
		err     error
	)

	switch source {
	case consts.CookieSourceBrowser:
		cookies, err = ReadBrowserCookies(ctx)
	case consts.CookieSourceFile:
		cookies, err = ReadNetscapeFile(cookieFile)
	default:
		return LoginReport{}, fmt.Errorf("cookie source %q has no cookies to check", source)
	}
	if err != nil {
		return LoginReport{}, err
	}
	if len(cookies) == 0 {
		return LoginReport{}, errors.New("no platform cookies found; log in via your browser first")
	}

	return FetchLoginReport(ctx, defaultNavURL, cookies)
}
