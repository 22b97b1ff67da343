package internal

import "time"

// Session is the persisted identity pair. Both fields present means the
// process starts authenticated; both empty means logged out.
type Session struct {
	UserID        string `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
}

// UserProfile is decoded once at the backend boundary. Optional fields are
// explicit pointers so "not provided" is distinguishable from a zero value.
type UserProfile struct {
	UserName string  `json:"userName"`
	Age      *int    `json:"age,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Location *string `json:"location,omitempty"`
}

type MetricType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// HealthMetricSample is an upload-ready aggregate produced by the sample
// provider. Immutable once constructed.
type HealthMetricSample struct {
	MetricID              int
	Value                 float64
	RecordedAt            time.Time
	TimeZoneOffsetMinutes int
}

// Sleep stages recorded by the local sample store. Awake intervals are
// counted as awakenings but never contribute to asleep duration.
type SleepStage string

const (
	SleepStageREM   SleepStage = "rem"
	SleepStageCore  SleepStage = "core"
	SleepStageDeep  SleepStage = "deep"
	SleepStageAwake SleepStage = "awake"
)

// SourcePlatform marks samples recorded by the platform's own health data
// store. Third-party sources may duplicate the same intervals and are
// excluded from sleep aggregation.
const SourcePlatform = "platform"

// RawSample is a single dated reading in the local sample store. Quantity
// metrics carry Value; sleep samples carry Stage, and their duration is the
// StartTime..EndTime span.
type RawSample struct {
	ID        string     `json:"id"`
	MetricID  int        `json:"metric_id"`
	Value     float64    `json:"value"`
	Stage     SleepStage `json:"stage,omitempty"`
	Source    string     `json:"source"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
}

type Benchmark struct {
	ID               string    `json:"id"`
	DataTypeID       int       `json:"dataTypeId"`
	AgeRange         string    `json:"ageRange"`
	Gender           string    `json:"gender"`
	TimeFrame        string    `json:"timeFrame"`
	UserDataValue    float64   `json:"userDataValue"`
	AverageValue     float64   `json:"averageValue"`
	RecommendedValue float64   `json:"recommendedValue"`
	LocationName     string    `json:"locationName"`
	CreatedAt        time.Time `json:"createdAt"`
}

const (
	RoleLeader = "Leader"
	RoleMember = "Member"
)

type ClanMember struct {
	MemberID string `json:"memberId"`
	UserID   string `json:"userId"`
	ClanID   string `json:"clanId"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

type Clan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Members     []ClanMember `json:"members"`
}

// ClanSummary is the list/search shape; member details require a follow-up
// fetch of the full clan.
type ClanSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	ChallengePoints int    `json:"challengePoints"`
}

type Challenge struct {
	ID                   string    `json:"id"`
	ClanID               string    `json:"clanId"`
	ChallengeName        string    `json:"challengeName"`
	ChallengeDescription string    `json:"challengeDescription"`
	DataType             string    `json:"dataType"`
	Goal                 float64   `json:"goal"`
	IsCompleted          bool      `json:"isCompleted"`
	TotalProgress        float64   `json:"totalProgress"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
}

type JoinRequest struct {
	ID        string    `json:"id"`
	ClanName  string    `json:"clanName"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reward history records are append-only on the server; the client reads
// them back in server order and never re-sorts.
type PointsReward struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Points        int       `json:"points"`
	Timestamp     time.Time `json:"timestamp"`
}

type TokenReward struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Tokens        int       `json:"tokens"`
	Timestamp     time.Time `json:"timestamp"`
}
