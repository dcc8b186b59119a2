package socialmedia

import (
	"context"
	"fmt"
)

// Manager turns business requests into LLM prompts and back.
type Manager struct {
	llm ChatClient
}

// NewManager ...
func NewManager(llm ChatClient) *Manager {
	return &Manager{llm: llm}
}

// GenerateStrategy builds a full social media strategy for a business.
func (m *Manager) GenerateStrategy(ctx context.Context, info BusinessInfo) (string, error) {
	sellingPoints := info.UniqueSellingPoints
	if sellingPoints == "" {
		sellingPoints = "غير محدد"
	}
	prompt := fmt.Sprintf(`قم بإنشاء استراتيجية تسويق شاملة لوسائل التواصل الاجتماعي لهذا العمل:

**معلومات العمل:**
- اسم العمل: %s
- نوع العمل: %s
- الجمهور المستهدف: %s
- الموقع: %s
- نقاط القوة الفريدة: %s

**يجب أن تشمل الاستراتيجية:**
1. تحليل الجمهور المستهدف التفصيلي
2. الهوية البصرية ونبرة الصوت المناسبة
3. المنصات الأنسب للاستخدام مع التبرير
4. أعمدة المحتوى الرئيسية (Content Pillars)
5. الأهداف القابلة للقياس
6. استراتيجية التفاعل مع الجمهور
7. التحديات المتوقعة وكيفية التعامل معها

قدم الاستراتيجية بشكل منظم ومفصل وعملي.`,
		info.BusinessName, info.BusinessType, info.TargetAudience, info.Location, sellingPoints)
	return m.llm.Chat(ctx, prompt)
}

// CreateMarketingPlan expands a strategy into a scheduled plan.
func (m *Manager) CreateMarketingPlan(ctx context.Context, strategy, duration string) (string, error) {
	if duration == "" {
		duration = "1 month"
	}
	prompt := fmt.Sprintf(`بناءً على هذه الاستراتيجية:
%s

قم بإنشاء خطة تسويقية مفصلة لمدة %s تشمل:

**الخطة يجب أن تحتوي على:**
1. جدولة زمنية أسبوعية مع المواضيع الرئيسية
2. أهداف محددة وقابلة للقياس لكل أسبوع
3. مؤشرات الأداء الرئيسية (KPIs) المناسبة
4. أنواع المحتوى المقترح لكل يوم
5. أوقات النشر المثلى
6. الميزانية المقترحة إذا كانت مطلوبة
7. استراتيجية الهاشتاغات
8. خطة للتفاعل مع التعليقات والرسائل

اجعل الخطة عملية وقابلة للتطبيق مباشرة.`, strategy, duration)
	return m.llm.Chat(ctx, prompt)
}

// SuggestContent proposes content ideas around a topic.
func (m *Manager) SuggestContent(ctx context.Context, topic, contentType, targetPlatform string) (string, error) {
	if contentType == "" {
		contentType = "all"
	}
	if targetPlatform == "" {
		targetPlatform = "Instagram"
	}
	prompt := fmt.Sprintf(`اقترح أفكار محتوى جذابة ومبتكرة حول موضوع "%s" لمنصة %s.

**متطلبات المحتوى:**
- نوع المحتوى المطلوب: %s
- يجب أن يكون المحتوى مناسب للثقافة العربية
- قابل للتطبيق والتنفيذ
- يحفز على التفاعل والمشاركة

**اقترح على الأقل 10 أفكار متنوعة تشمل:**
1. منشورات نصية تفاعلية
2. أفكار للصور مع أوصاف مفصلة
3. مقاطع فيديو قصيرة
4. قصص (Stories) تفاعلية
5. استطلاعات وأسئلة للجمهور
6. محتوى تعليمي
7. محتوى ترفيهي
8. محتوى وراء الكواليس
9. تحديات ومسابقات
10. شهادات العملاء

لكل فكرة، اذكر:
- العنوان المقترح
- وصف المحتوى
- الهدف من المنشور
- الهاشتاغات المناسبة`, topic, targetPlatform, contentType)
	return m.llm.Chat(ctx, prompt)
}

// CreatePost produces a ready-to-publish post from an idea.
func (m *Manager) CreatePost(ctx context.Context, idea, platform, tone string) (string, error) {
	if platform == "" {
		platform = "Instagram"
	}
	if tone == "" {
		tone = "engaging"
	}
	prompt := fmt.Sprintf(`قم بإنشاء منشور جاهز للنشر على منصة %s بناءً على هذه الفكرة:
"%s"

**مواصفات المنشور:**
- النبرة المطلوبة: %s
- مناسب للثقافة العربية
- يحفز على التفاعل والمشاركة

**يجب أن يشمل المنشور:**
1. **النص الرئيسي:** نص جذاب ومناسب لطول المنصة
2. **دعوة للعمل (CTA):** واضحة ومحفزة
3. **الهاشتاغات:** 15-20 هاشتاغ مناسب ومتنوع
4. **وصف الصورة/الفيديو المقترح:** وصف مفصل للمحتوى البصري
5. **أفضل وقت للنشر:** اقترح التوقيت الأمثل
6. **استراتيجية التفاعل:** كيفية الرد على التعليقات المتوقعة

اجعل المنشور احترافي وجذاب ومناسب للهدف المحدد.`, platform, idea, tone)
	return m.llm.Chat(ctx, prompt)
}

// ModeratePost reviews post content against publishing policies.
func (m *Manager) ModeratePost(ctx context.Context, postContent string) (string, error) {
	prompt := fmt.Sprintf(`قم بتحليل هذا المنشور للتأكد من مطابقته لمعايير النشر وسياسات المنصات:

**المحتوى المراد تحليله:**
%s

**نقاط التحليل المطلوبة:**
1. **فحص خطاب الكراهية:** هل يحتوي على أي محتوى يحرض على الكراهية؟
2. **انتهاك حقوق الطبع والنشر:** هل يحتوي على محتوى محمي بحقوق النشر؟
3. **مخالفة إرشادات المجتمع:** هل يخالف قواعد المنصات الاجتماعية؟
4. **المحتوى المضلل:** هل يحتوي على معلومات خاطئة أو مضللة؟
5. **الملاءمة الثقافية:** هل مناسب للثقافة العربية والقيم المحلية؟
6. **جودة اللغة:** فحص القواعد النحوية والإملائية

**النتيجة يجب أن تشمل:**
- تقييم عام (آمن/يحتاج تعديل/غير مناسب)
- قائمة بالمشاكل المكتشفة إن وجدت
- اقتراحات للتحسين
- درجة الأمان من 1-10
- توصيات قبل النشر

كن دقيقاً ومفصلاً في التحليل.`, postContent)
	return m.llm.Chat(ctx, prompt)
}
