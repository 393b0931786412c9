package rubric

import "fmt"

// rawItem and rawCategory describe the built-in rubric before ids, codes and
// units are generated. Keeping the raw definition separate means reordering
// or removing an item never leaves stale codes behind.
type rawItem struct {
	Name      string
	MaxPoints float64
	Checklist []string
	Criteria  map[RatingLevel]Criterion
}

type rawCategory struct {
	Name  string
	Items []rawItem
}

// rawData is the periodic performance rubric for a boiler-plant workshop
// director. Max score per item keeps the rubric anchored to a 100-point
// total, which the ranking thresholds depend on.
var rawData = []rawCategory{
	{
		Name: "1. VẬN HÀNH",
		Items: []rawItem{
			{
				Name:      "Kiểm soát sự cố",
				MaxPoints: 9,
				Checklist: []string{
					"Theo dõi các ca vận hành, chủ động điều chỉnh khi có dấu hiệu bất thường",
					"Chỉ đạo xử lý sự cố đúng quy trình, đảm bảo an toàn và hạn chế tổn thất",
					"Phân tích nguyên nhân gốc rễ và triển khai biện pháp ngăn ngừa tái diễn",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Không có gián đoạn cấp hơi", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Có sự cố, nhưng không phải bồi thường", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Để xảy ra sự gián đoạn cấp hơi phải bồi thường", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Chất lượng dịch vụ",
				MaxPoints: 10,
				Checklist: []string{
					"Đảm bảo chất lượng hơi đầu ra ổn định theo tiêu chuẩn khách hàng",
					"Giám sát áp suất, nhiệt độ, chất lượng đạt chuẩn",
					"Không để phát sinh khiếu nại hoặc phản ánh tiêu cực từ khách hàng",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Ổn định, không có khiếu nại của khách hàng", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Có chênh lệch nhỏ so với tiêu chuẩn", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Bị khách hàng phản ánh về chất lượng", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Kiểm soát tiêu hao",
				MaxPoints: 9,
				Checklist: []string{
					"Giám sát tiêu hao nhiên liệu theo ca/kíp và phát hiện chênh lệch bất thường",
					"Theo dõi tiêu hao điện, nước, hóa chất và cảnh báo khi vượt định mức",
					"Triển khai giải pháp tối ưu hóa hiệu suất đốt để giảm lãng phí",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Tiêu hao nhiên liệu ≤ định mức", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Vượt định mức cho phép (+1–5%)", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Vượt quá định mức cho phép (>10%)", ScorePercent: 0.0},
				},
			},
		},
	},
	{
		Name: "2. AN TOÀN",
		Items: []rawItem{
			{
				Name:      "An toàn – PCCC – Môi trường",
				MaxPoints: 9,
				Checklist: []string{
					"Giám sát tuân thủ đầy đủ quy định ATLĐ và PCCC theo ca/kíp",
					"Kiểm soát khí thải, nước thải đảm bảo đạt chuẩn môi trường",
					"Chỉ đạo khắc phục ngay khi có vi phạm và tổ chức huấn luyện lại",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Không có sự cố Khí Thải, ATLĐ & PCCC", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Có vi phạm nhỏ, đã khắc phục ngay", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Vi phạm nghiêm trọng hoặc tái diễn nhiều lần", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Kỷ luật – BHLĐ – Giám sát nội quy",
				MaxPoints: 9,
				Checklist: []string{
					"Giám sát việc sử dụng đầy đủ PPE/BHLĐ trong toàn bộ thời gian làm việc",
					"Kiểm soát tuân thủ nội quy, thời gian làm việc và khu vực hạn chế",
					"Xử lý vi phạm đúng thẩm quyền và báo cáo kịp thời cho cấp trên",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Đảm bảo 100% nhân sự tuân thủ nội quy", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Nhắc nhở một số trường hợp vi phạm nhỏ", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Có nhân sự vi phạm kỷ luật nghiêm trọng", ScorePercent: 0.0},
				},
			},
		},
	},
	{
		Name: "3. THIẾT BỊ",
		Items: []rawItem{
			{
				Name:      "Giám sát kiểm tra máy móc, hạ tầng",
				MaxPoints: 9,
				Checklist: []string{
					"Thực hiện kiểm tra – đánh giá hạ tầng nhà máy theo tần suất định kỳ",
					"Kiểm tra tình trạng thiết bị lò hàng ngày và ghi nhận đầy đủ",
					"Phát hiện sớm hư hỏng và đề xuất sửa chữa kịp thời",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Thực hiện kiểm tra đầy đủ 100% theo lịch tháng", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Thực hiện kiểm tra đạt 70–80% kế hoạch", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Thực hiện kiểm tra dưới 70% kế hoạch", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Tuân thủ PM/CM – quản lý bảo trì",
				MaxPoints: 9,
				Checklist: []string{
					"Tổ chức và tuân thủ bảo trì định kỳ theo kế hoạch (ngưng 24 giờ theo HĐ)",
					"Nghiệm thu chất lượng bảo trì theo tiêu chuẩn kỹ thuật",
					"Đề xuất thay thế hoặc nâng cấp thiết bị khi có dấu hiệu suy giảm",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Hoàn thành ≥98% hạng mục bảo trì", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Hoàn thành 70–80% hạng mục bảo trì", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Không ngừng máy bảo trì đúng HĐ", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Kiểm soát 5S",
				MaxPoints: 9,
				Checklist: []string{
					"Phát hiện và ghi nhận sai phạm 5S của các ca/kíp",
					"Xử lý báo cáo đúng mức độ và đúng thời gian yêu cầu",
					"Huấn luyện lại và đề xuất cải tiến khi lỗi tái diễn",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Kiểm soát tốt 5S, không lỗi tái diễn", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Còn lỗi vi phạm nhẹ, ít tái diễn", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "5S không đạt, lỗi tái diễn thường xuyên", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Báo cáo bảo trì, thiết bị định kỳ và đột xuất",
				MaxPoints: 9,
				Checklist: []string{
					"Gửi đầy đủ báo cáo tổng hợp tuần/tháng đúng thời hạn",
					"Báo cáo chi tiết tình trạng thiết bị – bảo trì định kỳ và đột xuất",
					"Phân tích xu hướng hư hỏng và cảnh báo nguy cơ trước khi xảy ra",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Báo cáo đầy đủ, chính xác và đúng thời hạn", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Báo cáo trễ nhẹ hoặc phải nhắc nhở", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Không gửi báo cáo hoặc báo cáo không đúng", ScorePercent: 0.0},
				},
			},
		},
	},
	{
		Name: "4. NHÂN SỰ",
		Items: []rawItem{
			{
				Name:      "Quản lý nhân sự",
				MaxPoints: 9,
				Checklist: []string{
					"Sắp xếp – điều phối nhân sự đảm bảo đủ quân số cho mọi ca",
					"Xử lý nghỉ đột xuất hoặc thiếu người mà không ảnh hưởng vận hành",
					"Đánh giá năng lực – thái độ và đề xuất luân chuyển phù hợp",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "Đảm bảo đủ nhân sự, không trống ca", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Thiếu hụt nhân sự nhưng đã xử lý ổn thỏa", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Thiếu nhân sự gây ảnh hưởng vận hành", ScorePercent: 0.0},
				},
			},
			{
				Name:      "Đào tạo",
				MaxPoints: 9,
				Checklist: []string{
					"Đào tạo nhân viên mới và nhân viên chuyển vị trí (có hồ sơ đào tạo)",
					"Truyền đạt đầy đủ quy trình và các thay đổi mới",
					"Đánh giá năng lực định kỳ và huấn luyện sau sự cố",
				},
				Criteria: map[RatingLevel]Criterion{
					Good:    {Label: "Tốt", Description: "100% nhân viên mới được đào tạo đạt yêu cầu", ScorePercent: 1.0},
					Average: {Label: "Trung bình", Description: "Đào tạo đạt yêu cầu ở mức khá (70-94%)", ScorePercent: 0.7},
					Weak:    {Label: "Yếu", Description: "Công tác đào tạo chưa đạt yêu cầu (<70%)", ScorePercent: 0.0},
				},
			},
		},
	},
}

// Default builds the built-in rubric with sequential ids, codes and units.
// Category ids are "cat_N"; item codes follow the "<category>.<item>" form
// and double as item ids.
func Default() Rubric {
	r := make(Rubric, 0, len(rawData))
	for catIdx, cat := range rawData {
		category := Category{
			ID:    fmt.Sprintf("cat_%d", catIdx+1),
			Name:  cat.Name,
			Items: make([]Item, 0, len(cat.Items)),
		}
		for itemIdx, item := range cat.Items {
			code := fmt.Sprintf("%d.%d", catIdx+1, itemIdx+1)
			category.Items = append(category.Items, Item{
				ID:        code,
				Code:      code,
				Name:      item.Name,
				MaxPoints: item.MaxPoints,
				Unit:      fmt.Sprintf("%gđ", item.MaxPoints),
				Checklist: item.Checklist,
				Criteria:  item.Criteria,
			})
		}
		r = append(r, category)
	}
	return r
}
