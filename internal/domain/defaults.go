package domain

// DefaultRecipients is the initial recipient master list, seeded once into an
// empty database. The names are the cleaning staff roster the department
// started the ledger with; later changes go through the master-list endpoints.
var DefaultRecipients = []string{
	"김순영",
	"노나경",
	"최점순",
	"이순옥",
	"박선옥",
	"정미자",
	"한영숙",
	"오금례",
	"강복남",
	"윤정희",
	"배순덕",
	"임말순",
	"서경자",
	"조옥분",
	"신명자",
	"황차순",
	"문정순",
	"안귀남",
}

// DefaultItems is the initial consumable master list, seeded once into an
// empty database.
var DefaultItems = []string{
	"핸드타올",
	"점보롤",
	"락스",
	"박리제",
	"쓰레기봉투(50L)",
	"쓰레기봉투(100L)",
	"물비누",
	"고무장갑",
	"면장갑",
	"마스크",
	"수세미",
	"행주",
	"걸레",
	"밀대패드",
	"빗자루",
	"쓰레받기",
	"유리세정제",
	"다목적세정제",
	"변기세정제",
	"왁스",
	"광택제",
	"탈취제",
	"방향제",
	"살충제",
	"알코올소독제",
	"종이컵",
	"화장지",
	"비닐봉투(중)",
	"비닐봉투(대)",
	"청소용솔",
	"스펀지",
	"극세사타올",
}
