package news

// Indonesian market terms on VADER's -4..4 valence scale.
var indonesianLexicon = map[string]float64{
	// positive
	"naik": 1.6, "menguat": 1.9, "melonjak": 2.3, "melesat": 2.3, "meroket": 2.5,
	"tumbuh": 1.8, "bertumbuh": 1.8, "pertumbuhan": 1.5, "laba": 1.5, "untung": 1.9,
	"keuntungan": 1.9, "solid": 1.7, "positif": 1.9, "rekor": 1.8, "tertinggi": 1.4,
	"optimis": 2.0, "optimistis": 2.0, "prospek": 1.0, "cerah": 1.8, "kuat": 1.5,
	"ekspansi": 1.2, "dividen": 0.9, "membaik": 1.8, "pulih": 1.5, "pemulihan": 1.4,
	"sukses": 2.2, "berhasil": 1.9, "unggul": 1.8, "rebound": 1.5, "bullish": 2.2,
	"borong": 1.3, "akumulasi": 1.0, "efisien": 1.2, "stabil": 1.0, "apresiasi": 1.5,
	"surplus": 1.4, "lonjakan": 1.8, "kenaikan": 1.5, "menarik": 1.4, "baik": 1.6,
	"bagus": 1.9, "melampaui": 1.3, "terbaik": 2.3,

	// negative
	"turun": -1.6, "melemah": -1.9, "anjlok": -2.6, "ambruk": -2.8, "merosot": -2.3,
	"jatuh": -2.0, "rugi": -2.2, "kerugian": -2.2, "merugi": -2.2, "negatif": -1.9,
	"terendah": -1.4, "pesimis": -2.0, "suram": -2.0, "lemah": -1.5, "gagal": -2.2,
	"bangkrut": -3.0, "pailit": -3.0, "gugatan": -1.8, "digugat": -1.8, "korupsi": -2.9,
	"suspensi": -2.0, "disuspensi": -2.0, "delisting": -2.6, "penurunan": -1.5, "koreksi": -1.0,
	"tekanan": -1.3, "tertekan": -1.6, "defisit": -1.5, "utang": -0.8, "bearish": -2.2,
	"buruk": -2.1, "krisis": -2.5, "penipuan": -3.0, "sanksi": -1.9, "denda": -1.6,
	"phk": -2.0, "mundur": -0.8, "lesu": -1.7, "ancaman": -1.9, "risiko": -0.9,
	"jual": -0.6, "terjun": -2.0,
}

var indonesianBoosters = []string{
	"sangat", "amat", "paling", "sekali", "makin", "semakin", "tajam", "signifikan", "drastis",
}

var indonesianNegators = []string{
	"tidak", "tak", "bukan", "belum", "tanpa", "jangan",
}
