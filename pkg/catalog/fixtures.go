package catalog

import "tgcatalog/models"

const fixtureImageURL = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSCTMa_qVsdRAVRTLr3wiQf_S6sun9vF0ZskHLNVcicDvbx4PijZTLnrxWgxxzolar0iT0&usqp=CAU"

var fixtureChannels = []models.Channel{
	{ID: 1, Name: "Telegram premium", Subscribers: 8550929, Category: "Новости и СМИ", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 2, Name: "РИА Новости", Subscribers: 3337342, Category: "Новости и СМИ", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 3, Name: "Банкста", Subscribers: 413246, Category: "Экономика", Verified: false, Country: "Казахстан", ImageURL: fixtureImageURL},
	{ID: 4, Name: "Экономика", Subscribers: 184902, Category: "Экономика", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 5, Name: "Дмитрий Медведев", Subscribers: 8550929, Category: "Политика", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 6, Name: "Top series", Subscribers: 3337342, Category: "Видео и фильмы", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 7, Name: "Банкста", Subscribers: 413246, Category: "Экономика", Verified: false, Country: "Казахстан", ImageURL: fixtureImageURL},
	{ID: 8, Name: "True crimes", Subscribers: 184902, Category: "Видео и фильмы", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 9, Name: "Аналитика", Subscribers: 8550929, Category: "Финансы", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 10, Name: "Вячеслав Володин", Subscribers: 3337342, Category: "Политика", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 11, Name: "Pictures", Subscribers: 413246, Category: "Картинки и фото", Verified: true, Country: "Казахстан", ImageURL: fixtureImageURL},
	{ID: 12, Name: "Экономика education", Subscribers: 184902, Category: "Экономика", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 13, Name: "ТАСС", Subscribers: 8550929, Category: "Новости и СМИ", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 14, Name: "Доктор Комаровский", Subscribers: 3337342, Category: "Здоровье", Verified: false, Country: "Украина", ImageURL: fixtureImageURL},
	{ID: 15, Name: "Easy English", Subscribers: 413246, Category: "Лингвистика", Verified: false, Country: "Беларусь", ImageURL: fixtureImageURL},
	{ID: 16, Name: "Экономика", Subscribers: 184902, Category: "Технологии", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
	{ID: 17, Name: "Новости Россия", Subscribers: 184902, Category: "Новости и СМИ", Verified: true, Country: "Россия", ImageURL: fixtureImageURL},
}

// FixtureChannels возвращает копию демонстрационного каталога из 17 каналов.
// Используется, пока таблица каналов пуста.
func FixtureChannels() []models.Channel {
	return append([]models.Channel(nil), fixtureChannels...)
}
