package domain

// SeedMemes returns a fresh copy of the default feed contents, used when
// persisted storage is empty or unreadable. The slice is ordered
// newest-first to match the feed's head-insert ordering. Callers own the
// returned slice; the defaults are injected at bootstrap, not read
// ambiently.
func SeedMemes() []Meme {
	return []Meme{
		{
			ID:         "4",
			ImageURL:   "https://i.imgur.com/j19E1zT.jpeg",
			Caption:    "PUT DOWN THE PHONE IT CAN WAIT",
			Score:      720,
			Minted:     false,
			ShareCount: 32,
			Prompt:     "a person relaxing in a field",
		},
		{
			ID:         "3",
			ImageURL:   "https://i.imgur.com/Ufhm420.jpeg",
			Caption:    "SEIZE THE MEMES OF PRODUCTION",
			Score:      850,
			Minted:     false,
			ShareCount: 64,
			Prompt:     "revolution meme",
		},
		{
			ID:         "2",
			ImageURL:   "https://i.imgur.com/sIqjGzN.jpeg",
			Caption:    "When history books talk about meme coins, make sure your wallet whispers '$NARY.'",
			Score:      987,
			Minted:     true,
			ShareCount: 128,
			Prompt:     "history of meme coins",
		},
		{
			ID:         "1",
			ImageURL:   "https://i.imgur.com/xIu2f0M.jpeg",
			Caption:    "Investors waiting for the bull run like it's DoorDash delivery",
			Score:      1337,
			Minted:     true,
			ShareCount: 256,
			Prompt:     "investors waiting for bull run",
		},
	}
}
