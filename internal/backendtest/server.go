// Package backendtest provides an in-process fake of the MoveUp REST API
// for client and session tests. Fixture fields are plain exported values;
// set them before issuing requests.
package backendtest

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/yourname/moveup/internal"
)

type UploadedSample struct {
	UserID         string  `json:"userId"`
	DatatypeID     int     `json:"datatypeId"`
	DataValue      float64 `json:"dataValue"`
	RecordedAt     string  `json:"recordedAt"`
	TimeZoneOffset int     `json:"timeZoneOffset"`
}

type Server struct {
	// Auth fixtures.
	Credentials  map[string]string            // username -> password
	Identities   map[string]internal.Session  // username -> identity pair
	LoginMessage string                       // message returned on auth failure

	Profile     *internal.UserProfile
	MetricTypes []internal.MetricType

	// Clan fixtures. A nil Member means "not in any clan" (404).
	Member       *internal.ClanMember
	Clans        map[string]internal.Clan
	ClanList     []internal.ClanSummary
	Challenges   map[string][]internal.Challenge
	JoinRequests map[string][]internal.JoinRequest

	// Blockchain fixtures; nil scalars are served as empty envelopes.
	Points         *int
	Balance        *float64
	Rate           *int
	PointsHistory  []internal.PointsReward
	TokenHistory   []internal.TokenReward
	ConvertStatus  int
	ConvertMessage string

	Benchmarks []internal.Benchmark

	// FailUploadMetric makes POST /api/healthdata return 500 for a metric.
	FailUploadMetric map[int]bool

	// BeforeClanMemberResponse and BeforeClanResponse run just before the
	// respective handlers reply. Tests use them to observe client state
	// while a lookup is still in flight.
	BeforeClanMemberResponse func()
	BeforeClanResponse       func()

	mu       sync.Mutex
	requests []string
	uploads  []UploadedSample
}

func New() *Server {
	return &Server{
		Credentials:      map[string]string{},
		Identities:       map[string]internal.Session{},
		LoginMessage:     "Invalid username or password",
		Clans:            map[string]internal.Clan{},
		Challenges:       map[string][]internal.Challenge{},
		JoinRequests:     map[string][]internal.JoinRequest{},
		ConvertStatus:    http.StatusOK,
		FailUploadMetric: map[int]bool{},
	}
}

// Requests returns every request seen so far as "METHOD /path", in arrival
// order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Uploads returns the recorded health data payloads.
func (s *Server) Uploads() []UploadedSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UploadedSample, len(s.uploads))
	copy(out, s.uploads)
	return out
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record)

	r.POST("/api/login", s.postLogin)
	r.GET("/api/user/:id", s.getUser)
	r.GET("/api/datatype", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.MetricTypes)
	})
	r.POST("/api/healthdata", s.postHealthData)

	r.GET("/api/blockchain/points/:addr", func(c *gin.Context) {
		c.JSON(http.StatusOK, stringEnvelope("points", s.Points))
	})
	r.GET("/api/blockchain/token-balance/:addr", func(c *gin.Context) {
		c.JSON(http.StatusOK, stringEnvelope("balance", s.Balance))
	})
	r.GET("/api/blockchain/points-per-token", func(c *gin.Context) {
		c.JSON(http.StatusOK, stringEnvelope("pointsPerToken", s.Rate))
	})
	r.POST("/api/blockchain/convert/:userId", func(c *gin.Context) {
		c.JSON(s.ConvertStatus, gin.H{"message": s.ConvertMessage})
	})
	r.GET("/api/blockchain/history/points/:addr", func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmptyPoints(s.PointsHistory))
	})
	r.GET("/api/blockchain/history/tokens/:addr", func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmptyTokens(s.TokenHistory))
	})

	r.GET("/api/clanmember/:userId", s.getClanMember)
	r.GET("/api/clan", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.ClanList)
	})
	r.GET("/api/clan/:id", s.getClan)
	r.POST("/api/clan", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})
	r.POST("/api/clan/:id/invite/:userId", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})
	r.GET("/api/clan/:id/joinrequest", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.JoinRequests[c.Param("id")])
	})
	r.POST("/api/joinrequest/:id/accept", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.POST("/api/joinrequest/:id/decline", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.DELETE("/api/clan/:id/member/:userId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.GET("/api/clan/:id/challenges", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Challenges[c.Param("id")])
	})
	r.POST("/api/clan/:id/challenge", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	r.GET("/api/demographicbenchmark/:userId", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Benchmarks)
	})
	r.POST("/api/demographicbenchmark", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	return r
}

func (s *Server) postLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
		return
	}
	if pw, ok := s.Credentials[body.Username]; !ok || pw != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": s.LoginMessage})
		return
	}
	identity := s.Identities[body.Username]
	c.JSON(http.StatusOK, gin.H{
		"userId":        identity.UserID,
		"walletAddress": identity.WalletAddress,
	})
}

func (s *Server) getUser(c *gin.Context) {
	if s.Profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, s.Profile)
}

func (s *Server) postHealthData(c *gin.Context) {
	var payload UploadedSample
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
		return
	}
	if s.FailUploadMetric[payload.DatatypeID] {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "upload rejected"})
		return
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, payload)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{})
}

func (s *Server) getClanMember(c *gin.Context) {
	if s.BeforeClanMemberResponse != nil {
		s.BeforeClanMemberResponse()
	}
	if s.Member == nil || s.Member.UserID != c.Param("userId") {
		c.JSON(http.StatusNotFound, gin.H{"message": "No clan membership found"})
		return
	}
	c.JSON(http.StatusOK, s.Member)
}

func (s *Server) getClan(c *gin.Context) {
	if s.BeforeClanResponse != nil {
		s.BeforeClanResponse()
	}
	clan, ok := s.Clans[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Clan not found"})
		return
	}
	c.JSON(http.StatusOK, clan)
}

// stringEnvelope mimics the backend's habit of serving numbers as strings
// inside a one-field envelope; a nil value yields an empty envelope.
func stringEnvelope[T int | float64](field string, value *T) gin.H {
	if value == nil {
		return gin.H{}
	}
	switch v := any(*value).(type) {
	case int:
		return gin.H{field: strconv.Itoa(v)}
	case float64:
		return gin.H{field: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return gin.H{}
}

func orEmptyPoints(h []internal.PointsReward) []internal.PointsReward {
	if h == nil {
		return []internal.PointsReward{}
	}
	return h
}

func orEmptyTokens(h []internal.TokenReward) []internal.TokenReward {
	if h == nil {
		return []internal.TokenReward{}
	}
	return h
}
