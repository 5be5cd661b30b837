/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

// Word lists backing the readable auto-generated aliases. An alias is one
// word from each list, joined with "-".

var aliasAdjectives = []string{
	"able", "agile", "amber", "ample", "azure", "bold", "brave", "bright",
	"brisk", "calm", "civil", "clear", "clever", "cosmic", "crisp", "daring",
	"deep", "eager", "early", "exact", "fair", "fancy", "fast", "fine",
	"fond", "fresh", "gentle", "glad", "golden", "grand", "happy", "hardy",
	"honest", "humble", "ideal", "jolly", "keen", "kind", "lively", "loyal",
	"lucid", "mellow", "merry", "mighty", "modest", "noble", "novel", "polite",
	"proud", "quick", "quiet", "rapid", "robust", "shiny", "silent", "smart",
	"solid", "stable", "steady", "subtle", "sunny", "swift", "tidy", "vivid",
	"warm", "wise", "witty", "young", "zesty",
}

var aliasNouns = []string{
	"anchor", "badger", "beacon", "bridge", "canyon", "castle", "cedar",
	"comet", "condor", "coral", "crane", "cricket", "dolphin", "eagle",
	"ember", "falcon", "fern", "forest", "fox", "garden", "glacier", "harbor",
	"hawk", "heron", "island", "jaguar", "juniper", "lagoon", "lantern",
	"lark", "lemur", "lily", "lotus", "maple", "meadow", "meteor", "mountain",
	"nebula", "ocean", "orchid", "osprey", "otter", "owl", "panda", "pebble",
	"penguin", "pine", "prairie", "quartz", "rabbit", "raven", "reef",
	"river", "robin", "salmon", "sparrow", "spruce", "summit", "swan",
	"thicket", "tiger", "tulip", "valley", "walrus", "willow", "wren",
	"zephyr",
}

var aliasVerbs = []string{
	"bakes", "builds", "carries", "carves", "climbs", "crafts", "dances",
	"dives", "draws", "dreams", "drifts", "explores", "finds", "flies",
	"floats", "flows", "gathers", "gazes", "glides", "grows", "hikes",
	"hums", "jumps", "leaps", "listens", "maps", "mends", "paints", "plants",
	"plays", "races", "rests", "rises", "roams", "rolls", "runs", "sails",
	"searches", "sees", "shapes", "shares", "sings", "sketches", "soars",
	"sparks", "spins", "swims", "tends", "travels", "walks", "wanders",
	"watches", "weaves", "whistles", "wonders", "writes",
}

var aliasAdverbs = []string{
	"boldly", "bravely", "brightly", "briskly", "calmly", "cheerfully",
	"clearly", "daily", "deftly", "eagerly", "early", "easily", "fairly",
	"fondly", "freely", "gently", "gladly", "gracefully", "happily",
	"keenly", "kindly", "lightly", "lively", "loudly", "merrily", "mildly",
	"neatly", "nicely", "openly", "patiently", "plainly", "politely",
	"proudly", "quickly", "quietly", "rapidly", "readily", "safely",
	"sharply", "silently", "simply", "slowly", "smoothly", "softly",
	"steadily", "surely", "sweetly", "swiftly", "warmly", "wisely",
}
