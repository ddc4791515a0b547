package health

// Entry is one day's recorded steps and calories as delivered by the backend.
type Entry struct {
	Date        string `json:"date"`
	Steps       int    `json:"steps"`
	Calories    int    `json:"calories"`
	IsAnomaly   bool   `json:"isAnomaly"`
	AnomalyType string `json:"anomalyType,omitempty"`
}

// Meal is a single logged meal.
type Meal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// Summary is the today/streak/progress snapshot plus current goals.
type Summary struct {
	TodaySteps        int      `json:"todaySteps"`
	TodayCalories     int      `json:"todayCalories"`
	CurrentStreak     int      `json:"currentStreak"`
	LongestStreak     int      `json:"longestStreak"`
	StepsProgress     int      `json:"stepsProgress"`
	CaloriesProgress  int      `json:"caloriesProgress"`
	AISuggestions     []string `json:"aiSuggestions"`
	TodayMeals        []Meal   `json:"todayMeals"`
	DailyStepsGoal    int      `json:"dailyStepsGoal"`
	DailyCaloriesGoal int      `json:"dailyCaloriesGoal"`
}

// PredictionPoint is one forecasted day.
type PredictionPoint struct {
	Date     string `json:"date"`
	Steps    int    `json:"steps"`
	Calories int    `json:"calories"`
}

// Prediction holds future-dated points in ascending date order.
type Prediction struct {
	Predictions []PredictionPoint `json:"predictions"`
}

// MonthlyReport aggregates one calendar month.
type MonthlyReport struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	TotalSteps    int      `json:"totalSteps"`
	AvgSteps      int      `json:"avgSteps"`
	TotalCalories int      `json:"totalCalories"`
	AvgCalories   int      `json:"avgCalories"`
	ActiveDays    int      `json:"activeDays"`
	Anomalies     int      `json:"anomalies"`
	CurrentStreak int      `json:"currentStreak"`
	AISuggestions []string `json:"aiSuggestions"`
	Entries       []Entry  `json:"entries"`
}

// LeaderboardEntry is one ranked participant, ordered as delivered.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	DisplayName   string `json:"displayName"`
	Username      string `json:"username"`
	CurrentStreak int    `json:"currentStreak"`
	WeeklySteps   int    `json:"weeklySteps"`
	TodaySteps    int    `json:"todaySteps"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// FriendActivity is a friend's totals for the current day.
type FriendActivity struct {
	DisplayName string `json:"displayName"`
	Steps       int    `json:"steps"`
	Calories    int    `json:"calories"`
}

// UserCandidate is a search hit for friend discovery.
type UserCandidate struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Targets are the user's goal fields.
type Targets struct {
	DailyStepsGoal     int `json:"dailyStepsGoal"`
	WeeklyStepsGoal    int `json:"weeklyStepsGoal"`
	DailyCaloriesGoal  int `json:"dailyCaloriesGoal"`
	WeeklyCaloriesGoal int `json:"weeklyCaloriesGoal"`
}

// EntryRequest upserts one day's steps.
type EntryRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// MealRequest appends one meal for a date.
type MealRequest struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// AddFriendRequest adds a friend by username.
type AddFriendRequest struct {
	FriendUsername string `json:"friendUsername"`
}
