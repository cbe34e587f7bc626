package flavor

import "math/rand/v2"

func pick(lines []string) string {
	return lines[rand.IntN(len(lines))]
}

var buildUpLines = []string{
	"The air feels different tonight… 🌙",
	"Some feelings can't stay hidden anymore…",
	"Destiny has chosen this moment…",
	"%s, this message carries a heartbeat… ❤️",
	"Silence before the confession…",
	"Violins are playing in the background (probably). 🎻",
	"Chat slow ho gaya… kyunki confession loading hai. 💘",
	"Aaj group me sirf emotions chalenge, logic nahi. ✨",
}

var rejectionLines = []string{
	"Love is brave… but sometimes not returned. 💔",
	"That hurt echoed across the group…",
	"Rejection builds character… allegedly.",
	"The drama intensifies…",
	"Dil tut gaya, lekin attitude abhi bhi premium hai.",
	"Plot twist: hero arc starts after heartbreak.",
}

var crushTeaserLines = []string{
	"💌 Someone in this group has a crush on you…\n\nThey've been watching silently.\nAdmiring quietly.\nWaiting patiently.\n\nWill you reveal the mystery?",
	"🌹 Anonymous heartbeat detected.\n\nKisi ne aapke liye feelings drop ki hain.\nNaam abhi secret hai.\n\nReady for reveal?",
	"✨ Love radar says: you are someone's favorite person in this group.\n\nIdentity hidden. Emotions real.",
}

var secretKeptLines = []string{
	"🔒 Some secrets are more beautiful when hidden.",
	"🔒 Mystery maintained. Dil ka password safe hai.",
	"🌙 Secret crush archived in moonlight mode.",
}

var prankDramaticLines = []string{
	"💘 %s…\n\nThis is not a normal message.\nThis is not a joke.\nThis is destiny speaking.",
	"🎭 %s, scene set hai.\n\nLights on. Heartbeat up.\nAur ab… plot twist incoming.",
}

var prankRevealLines = []string{
	"Relax… it was a prank 😏\n\nBlame %s.\nTrust issues unlocked.",
	"😂 Scene complete. Yeh prank tha.\n\nMastermind: %s.\nAudience reaction: legendary.",
}

var breakupArchivedLines = []string{
	"💔 Love story archived.\n\nThe memories remain.\nThe couple is no more.",
	"🖤 Chapter closed.\n\nPhotos fade. Status changes.\nA new era begins.",
}

var vibeLines = []string{
	"💘 Vibe: Aaj proposal ka perfect day hai. Risk lo, history banao.",
	"🌙 Vibe: Late-night confession energy unlocked.",
	"🎭 Vibe: Thoda pyaar, thoda prank — perfect combo.",
	"💔 Vibe: Breakup bhi classy hona chahiye, drama ke saath.",
	"✨ Vibe: Group chat ko movie scene bana do.",
}

var welcomeLines = []string{
	"💖 **Welcome to Valentine Premium Mode**\n\nDrama on. Hearts open. Choose your destiny below.",
	"🌹 **Welcome to the Love Arena**\n\nPropose, prank, confess, breakup — everything cinematic.",
	"✨ **Valentine Engine Activated**\n\nAaj group me sirf premium vibes. Pick a mode below.",
}
