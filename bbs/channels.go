// bbs/channels.go
package bbs

// Channel is a named topic bucket. The registry is fixed; channels are
// not user-creatable.
type Channel struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Image string `json:"image"`
}

var channelRegistry = []Channel{
	{Key: "general", Title: "General", Image: "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=100&h=100&fit=crop"},
	{Key: "creative", Title: "Creative", Image: "https://images.unsplash.com/photo-1649972904349-6e44c42644a7?w=100&h=100&fit=crop"},
	{Key: "showerthoughts", Title: "Showerthoughts", Image: "https://images.unsplash.com/photo-1501854140801-50d01698950b?w=100&h=100&fit=crop"},
	{Key: "quest", Title: "Quest", Image: "https://images.unsplash.com/photo-1501854140801-50d01698950b?w=100&h=100&fit=crop"},
	{Key: "sandbox", Title: "Sandbox", Image: "https://images.unsplash.com/photo-1487058792275-0ad4aaf24ca7?w=100&h=100&fit=crop"},
	{Key: "memes", Title: "Memes", Image: "https://images.unsplash.com/photo-1582562124811-c09040d0a901?w=100&h=100&fit=crop"},
}

// Channels returns the registry in display order.
func Channels() []Channel {
	out := make([]Channel, len(channelRegistry))
	copy(out, channelRegistry)
	return out
}

// ChannelByKey looks up a channel; ok is false for unknown keys.
func ChannelByKey(key string) (Channel, bool) {
	for _, ch := range channelRegistry {
		if ch.Key == key {
			return ch, true
		}
	}
	return Channel{}, false
}
