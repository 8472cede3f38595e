package domain

// CatalogEntry is a display option for a pick list (expense categories,
// workout types, mood options).
type CatalogEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ExpenseCategories are the selectable expense categories.
var ExpenseCategories = []CatalogEntry{
	{ID: "food", Name: "Food & Dining", Icon: "🍔", Color: "#F97316"},
	{ID: "transport", Name: "Transport", Icon: "🚗", Color: "#3B82F6"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#EC4899"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#8B5CF6"},
	{ID: "bills", Name: "Bills & Utilities", Icon: "📄", Color: "#6366F1"},
	{ID: "health", Name: "Health", Icon: "💊", Color: "#10B981"},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#14B8A6"},
	{ID: "other", Name: "Other", Icon: "📦", Color: "#64748B"},
}

// WorkoutTypes are the selectable workout types.
var WorkoutTypes = []CatalogEntry{
	{ID: "running", Name: "Running", Icon: "🏃", Color: "#F97316"},
	{ID: "cycling", Name: "Cycling", Icon: "🚴", Color: "#3B82F6"},
	{ID: "gym", Name: "Gym", Icon: "🏋️", Color: "#8B5CF6"},
	{ID: "yoga", Name: "Yoga", Icon: "🧘", Color: "#06B6D4"},
	{ID: "swimming", Name: "Swimming", Icon: "🏊", Color: "#0EA5E9"},
	{ID: "walking", Name: "Walking", Icon: "🚶", Color: "#10B981"},
	{ID: "sports", Name: "Sports", Icon: "⚽", Color: "#22C55E"},
	{ID: "other", Name: "Other", Icon: "💪", Color: "#64748B"},
}

// MoodOptions are the selectable mood check-in values.
var MoodOptions = []CatalogEntry{
	{ID: "great", Name: "Great", Icon: "😄", Color: "#22C55E"},
	{ID: "good", Name: "Good", Icon: "🙂", Color: "#84CC16"},
	{ID: "okay", Name: "Okay", Icon: "😐", Color: "#FBBF24"},
	{ID: "low", Name: "Low", Icon: "😔", Color: "#F97316"},
	{ID: "bad", Name: "Bad", Icon: "😢", Color: "#EF4444"},
}
