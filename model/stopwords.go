package model

// englishStopWords 英文停用词表，向量化前从商品文本中剔除。
// 高频功能词对商品相似度没有区分力，保留只会稀释权重。
var englishStopWords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am",
		"an", "and", "any", "are", "as", "at", "back", "be", "became", "because",
		"been", "before", "behind", "being", "below", "between", "both", "but",
		"by", "can", "cannot", "could", "did", "do", "does", "doing", "down",
		"during", "each", "either", "else", "enough", "etc", "even", "ever",
		"every", "few", "for", "from", "further", "get", "go", "had", "has",
		"have", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "however", "i", "if", "in", "into", "is", "it",
		"its", "itself", "just", "less", "many", "may", "me", "might", "more",
		"moreover", "most", "much", "must", "my", "myself", "neither", "never",
		"no", "nor", "not", "now", "of", "off", "often", "on", "once", "only",
		"onto", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"per", "rather", "same", "she", "should", "since", "so", "some", "still",
		"such", "than", "that", "the", "their", "theirs", "them", "themselves",
		"then", "there", "therefore", "these", "they", "this", "those", "through",
		"thus", "to", "too", "under", "until", "up", "upon", "us", "very", "was",
		"we", "well", "were", "what", "when", "where", "whether", "which",
		"while", "who", "whom", "whose", "why", "will", "with", "within",
		"without", "would", "yet", "you", "your", "yours", "yourself",
		"yourselves",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
