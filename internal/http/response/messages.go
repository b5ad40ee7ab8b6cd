package response

import (
	"golang.org/x/text/language"
)

var (
	supported = []language.Tag{language.Russian, language.English}
	matcher   = language.NewMatcher(supported)
)

var messages = map[language.Tag]map[string]string{
	language.Russian: {
		"not_authenticated":        "Учетные данные не были предоставлены.",
		"invalid_token":            "Недействительный токен.",
		"not_recipe_author":        "Изменять рецепт может только его автор.",
		"recipe_not_found":         "Рецепт не найден.",
		"ingredient_not_found":     "Ингредиент не найден.",
		"tag_not_found":            "Тег не найден.",
		"user_not_found":           "Пользователь не найден.",
		"name_required":            "Укажите название рецепта.",
		"name_too_long":            "Название рецепта слишком длинное.",
		"text_required":            "Укажите описание рецепта.",
		"image_required":           "Добавьте изображение.",
		"invalid_cooking_time":     "Время приготовления должно быть не меньше 1 минуты.",
		"ingredients_required":     "Добавьте хотя бы один ингредиент.",
		"tags_required":            "Добавьте хотя бы один тег.",
		"invalid_amount":           "Количество ингредиента должно быть не меньше 1.",
		"duplicate_ingredients":    "Ингредиенты не должны повторяться.",
		"duplicate_tags":           "Теги не должны повторяться.",
		"already_in_favorites":     "Рецепт уже в избранном.",
		"not_in_favorites":         "Рецепта нет в избранном.",
		"already_in_shopping_cart": "Рецепт уже в списке покупок.",
		"not_in_shopping_cart":     "Рецепта нет в списке покупок.",
		"already_subscribed":       "Вы уже подписаны на этого автора.",
		"not_subscribed":           "Вы не подписаны на этого автора.",
		"self_subscription":        "Нельзя подписаться на самого себя.",
		"invalid_request":          "Некорректный запрос.",
		"invalid_id":               "Некорректный идентификатор.",
		"invalid_page":             "Некорректная страница.",
		"render_failed":            "Не удалось сформировать файл.",
		"route_not_found":          "Страница не найдена.",
		"internal_error":           "Внутренняя ошибка сервера.",
	},
	language.English: {
		"not_authenticated":        "Authentication credentials were not provided.",
		"invalid_token":            "Invalid token.",
		"not_recipe_author":        "Only the author can change this recipe.",
		"recipe_not_found":         "Recipe not found.",
		"ingredient_not_found":     "Ingredient not found.",
		"tag_not_found":            "Tag not found.",
		"user_not_found":           "User not found.",
		"name_required":            "Recipe name is required.",
		"name_too_long":            "Recipe name is too long.",
		"text_required":            "Recipe text is required.",
		"image_required":           "Image is required.",
		"invalid_cooking_time":     "Cooking time must be at least 1 minute.",
		"ingredients_required":     "Add at least one ingredient.",
		"tags_required":            "Add at least one tag.",
		"invalid_amount":           "Ingredient amount must be at least 1.",
		"duplicate_ingredients":    "Ingredients must not repeat.",
		"duplicate_tags":           "Tags must not repeat.",
		"already_in_favorites":     "Recipe is already in favorites.",
		"not_in_favorites":         "Recipe is not in favorites.",
		"already_in_shopping_cart": "Recipe is already in the shopping cart.",
		"not_in_shopping_cart":     "Recipe is not in the shopping cart.",
		"already_subscribed":       "You are already subscribed to this author.",
		"not_subscribed":           "You are not subscribed to this author.",
		"self_subscription":        "You cannot subscribe to yourself.",
		"invalid_request":          "Malformed request.",
		"invalid_id":               "Malformed identifier.",
		"invalid_page":             "Invalid page.",
		"render_failed":            "Could not build the document.",
		"route_not_found":          "Not found.",
		"internal_error":           "Internal server error.",
	},
}

// Message resolves code for the best language in an Accept-Language header.
// Russian is the default; unknown codes get a generic text.
func Message(acceptLanguage, code string) string {
	tag := language.Russian
	if acceptLanguage != "" {
		if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
			_, idx, conf := matcher.Match(prefs...)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	if msg, ok := messages[tag][code]; ok {
		return msg
	}
	return fallback(tag)
}

func fallback(tag language.Tag) string {
	if tag == language.English {
		return "Request failed."
	}
	return "Ошибка запроса."
}
