package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/plot"
)

// number is a float64 that encodes non-finite values as JSON strings.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type complexJSON struct {
	Re number `json:"re"`
	Im number `json:"im"`
}

type evalResponse struct {
	Expr   string      `json:"expr"`
	Re     number      `json:"re"`
	Im     number      `json:"im"`
	Result complexJSON `json:"result"`
}

type treeResponse struct {
	Expr  string `json:"expr"`
	Tree  string `json:"tree"`
	Depth int    `json:"depth"`
	Size  int    `json:"size"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Token  string `json:"token,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "err", err)
	}
}

// fail writes err as a JSON error. Parse errors carry their reason and token.
func (s *Server) fail(w http.ResponseWriter, code int, err error) {
	resp := errorResponse{Error: err.Error()}
	var perr *cexpr.ParseError
	if errors.As(err, &perr) {
		resp.Reason = perr.Reason.String()
		resp.Token = perr.Token
	}
	s.writeJSON(w, code, resp)
}

// expr parses the expr query parameter.
func (s *Server) expr(q url.Values) (string, *cexpr.Expr, error) {
	src := q.Get("expr")
	if src == "" {
		return "", nil, errors.New("missing expr parameter")
	}
	e, err := s.parse(src)
	return src, e, err
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, e, err := s.expr(q)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	var re, im float64
	if err := floatParam(q, "re", &re); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := floatParam(q, "im", &im); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	v := e.Eval(complex(re, im))
	s.metrics.evaluations.Inc()
	s.writeJSON(w, http.StatusOK, evalResponse{
		Expr:   src,
		Re:     number(re),
		Im:     number(im),
		Result: complexJSON{Re: number(real(v)), Im: number(imag(v))},
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	src, e, err := s.expr(r.URL.Query())
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, treeResponse{
		Expr:  src,
		Tree:  e.String(),
		Depth: e.Depth(),
		Size:  e.Size(),
	})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	_, e, err := s.expr(q)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	p := s.params
	for _, err := range []error{
		intParam(q, "width", &p.Width),
		intParam(q, "height", &p.Height),
		intParam(q, "cells", &p.Cells),
		floatParam(q, "range", &p.Range),
		floatParam(q, "scale", &p.Scale),
		floatParam(q, "angle", &p.Angle),
	} {
		if err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
	}
	if err := p.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	start := time.Now()
	var b bytes.Buffer
	if err := plot.Render(r.Context(), &b, cexpr.Evaluator(e), p); err != nil {
		s.log.Warn("plot failed", "err", err)
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	s.metrics.render.Observe(time.Since(start).Seconds())
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(b.Bytes())
}

// floatParam sets *v from the query parameter name if it is present.
func floatParam(q url.Values, name string, v *float64) error {
	s := q.Get(name)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Errorf("bad %s parameter %q", name, s)
	}
	*v = f
	return nil
}

// intParam sets *v from the query parameter name if it is present.
func intParam(q url.Values, name string, v *int) error {
	s := q.Get(name)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Errorf("bad %s parameter %q", name, s)
	}
	*v = n
	return nil
}
