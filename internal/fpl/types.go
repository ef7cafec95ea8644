package fpl

// Payload types for the public Fantasy Premier League API. Only the fields
// the service consumes are mapped; numeric strings (form, points_per_game,
// selected_by_percent) are kept as strings and parsed at the sync boundary.

// Bootstrap is the bootstrap-static response: every player, club and
// gameweek in one document.
type Bootstrap struct {
	Events   []Event   `json:"events"`
	Teams    []Team    `json:"teams"`
	Elements []Element `json:"elements"`
}

// Event is a gameweek.
type Event struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
	IsPrevious   bool   `json:"is_previous"`
	Finished     bool   `json:"finished"`
}

// Team is a Premier League club.
type Team struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Code                int    `json:"code"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

// Element is a player record. now_cost is in tenths of a million. status is
// one of a/d/i/s/u/n; chance_of_playing_next_round is 0-100 or null.
type Element struct {
	ID                       int     `json:"id"`
	WebName                  string  `json:"web_name"`
	FirstName                string  `json:"first_name"`
	SecondName               string  `json:"second_name"`
	ElementType              int     `json:"element_type"`
	Team                     int     `json:"team"`
	NowCost                  int     `json:"now_cost"`
	TotalPoints              int     `json:"total_points"`
	PointsPerGame            string  `json:"points_per_game"`
	Form                     string  `json:"form"`
	SelectedByPercent        string  `json:"selected_by_percent"`
	Minutes                  int     `json:"minutes"`
	GoalsScored              int     `json:"goals_scored"`
	Assists                  int     `json:"assists"`
	CleanSheets              int     `json:"clean_sheets"`
	Bonus                    int     `json:"bonus"`
	Status                   string  `json:"status"`
	ChanceOfPlayingNextRound *int    `json:"chance_of_playing_next_round"`
	ICTIndex                 string  `json:"ict_index"`
	Influence                string  `json:"influence"`
	Creativity               string  `json:"creativity"`
	Threat                   string  `json:"threat"`
}

// Entry is a user team profile.
type Entry struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	PlayerFirstName     string `json:"player_first_name"`
	PlayerLastName      string `json:"player_last_name"`
	SummaryOverallPoints int   `json:"summary_overall_points"`
	SummaryOverallRank  int    `json:"summary_overall_rank"`
	CurrentEvent        int    `json:"current_event"`
	LastDeadlineBank    int    `json:"last_deadline_bank"`
	LastDeadlineValue   int    `json:"last_deadline_value"`
}

// Picks is the entry/{id}/event/{gw}/picks response: the 15 squad slots plus
// the entry's gameweek financials.
type Picks struct {
	ActiveChip   string       `json:"active_chip"`
	EntryHistory EntryHistory `json:"entry_history"`
	Picks        []Pick       `json:"picks"`
}

// EntryHistory carries the bank balance (tenths) as of the gameweek.
type EntryHistory struct {
	Event          int `json:"event"`
	Bank           int `json:"bank"`
	Value          int `json:"value"`
	EventTransfers int `json:"event_transfers"`
	TotalPoints    int `json:"total_points"`
}

// Pick is one squad slot: positions 1-11 are the starting XI, 12-15 the
// bench in order.
type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// ElementSummary is the per-player detail response: gameweek-by-gameweek
// history plus the player's remaining fixtures.
type ElementSummary struct {
	Fixtures []ElementFixture `json:"fixtures"`
	History  []ElementRound   `json:"history"`
}

// ElementRound is one finished gameweek for a player.
type ElementRound struct {
	Element     int `json:"element"`
	Round       int `json:"round"`
	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
	Value       int `json:"value"`
}

// ElementFixture is one upcoming fixture from the player's perspective.
type ElementFixture struct {
	ID         int  `json:"id"`
	Event      int  `json:"event"`
	IsHome     bool `json:"is_home"`
	Difficulty int  `json:"difficulty"`
}

// Fixture is one scheduled match with the API's 1-5 difficulty ratings.
type Fixture struct {
	ID              int  `json:"id"`
	Code            int  `json:"code"`
	Event           int  `json:"event"`
	Finished        bool `json:"finished"`
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
}
