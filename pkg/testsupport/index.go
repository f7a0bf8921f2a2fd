package testsupport

import (
	"net/http"
	"net/http/httptest"
)

// IndexPage is an Apache style listing of the repositories served under the admin URL.
const IndexPage = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">
<html>
 <head>
  <title>Index of /git</title>
 </head>
 <body>
<h1>Index of /git</h1>
  <table>
   <tr><th><a href="?C=N;O=D">Name</a></th><th><a href="?C=M;O=A">Last modified</a></th></tr>
   <tr><th colspan="2"><hr></th></tr>
<tr><td><a href="/">Parent Directory</a></td><td>&nbsp;</td></tr>
<tr><td><a href="gfi-gstack/">gfi-gstack/</a></td><td>2016-03-16 10:01</td></tr>
<tr><td><a href="has-wordpress/">has-wordpress/</a></td><td>2016-03-16 10:02</td></tr>
<tr><td><a href="has-evamed/">has-evamed/</a></td><td>2016-03-16 10:03</td></tr>
<tr><td><a href="was-legacy/">was-legacy/</a></td><td>2016-03-16 10:04</td></tr>
<tr><td><a href="has-mysql/">has-mysql/</a></td><td>2016-03-16 10:05</td></tr>
<tr><td><a href="ligoj.git/">ligoj.git/</a></td><td>2016-03-16 10:06</td></tr>
<tr><td><a href="README.html">README.html</a></td><td>2016-03-16 10:07</td></tr>
<tr><td><a href="https://httpd.apache.org/">Apache</a></td><td>&nbsp;</td></tr>
   <tr><th colspan="2"><hr></th></tr>
</table>
</body></html>
`

// AdminServer serves a fixed admin index page at /.
type AdminServer struct {
	Status   int
	Body     string
	Username string
	Password string
}

// Handler returns the http.Handler answering the index request.
func (a *AdminServer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if a.Username != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != a.Username || pass != a.Password {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(a.Body))
	})
}

// NewAdminServer starts a plain HTTP admin endpoint.
func NewAdminServer(a *AdminServer) *httptest.Server {
	return httptest.NewServer(a.Handler())
}

// NewAdminTLSServer starts an admin endpoint behind a self-signed certificate.
func NewAdminTLSServer(a *AdminServer) *httptest.Server {
	return httptest.NewTLSServer(a.Handler())
}
